package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/bryantlimm/setaside-go/internal/config"
	"github.com/bryantlimm/setaside-go/internal/gateway"
	"github.com/bryantlimm/setaside-go/internal/infra/api"
	"github.com/bryantlimm/setaside-go/internal/repository"
	"github.com/bryantlimm/setaside-go/internal/session"
	"github.com/bryantlimm/setaside-go/internal/usecase"
	"github.com/bryantlimm/setaside-go/internal/validator"
	"github.com/joho/godotenv"
)

func main() {
	//.envは任意
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	//セッションとゲートウェイ
	store := session.NewFileStore(cfg.SessionFile, log)
	gw := gateway.New(cfg.BaseURL, store, log)

	//Repository（API実装）生成
	authRepo := api.NewAuthAPIRepository(gw)
	productRepo := api.NewProductAPIRepository(gw)
	orderRepo := api.NewOrderAPIRepository(gw)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(authRepo, store, validator.NewAuthValidator(), log)
	productUC := usecase.NewProductUsecase(productRepo, store)
	cartUC := usecase.NewCartUsecase(orderRepo, log)
	orderUC := usecase.NewOrderUsecase(orderRepo)

	ctx := context.Background()

	//起動時にセッション復元を試す
	if user, ok := authUC.RestoreSession(ctx); ok {
		fmt.Printf("signed in as %s\n", user.DisplayName())
	} else if email := os.Getenv("LOGIN_EMAIL"); email != "" {
		user, err := authUC.Login(ctx, email, os.Getenv("LOGIN_PASSWORD"))
		if err != nil {
			log.Error("login failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("signed in as %s\n", user.DisplayName())
	}

	//商品一覧を表示
	products, err := productUC.Browse(ctx, repository.ProductListQuery{Page: 1, Limit: 20})
	if err != nil {
		log.Error("product listing failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("menu:")
	for _, p := range products {
		fmt.Printf("  %-20s $%.2f (%s)\n", p.Name, p.Price, p.Category)
	}

	//未ログインならここまで
	if !authUC.IsLoggedIn() {
		return
	}

	//デモ注文：先頭の商品を2つカートに入れて注文する
	if len(products) > 0 {
		cartUC.AddOrUpdate(products[0], 2, "")
		order, err := cartUC.PlaceOrder(ctx, "", nil)
		if err != nil {
			log.Error("checkout failed", "error", err)
			os.Exit(1)
		}
		if order != nil {
			fmt.Printf("placed order %s (total $%.2f)\n", order.ID, order.Total())
		}
	}

	//注文履歴
	if err := orderUC.Fetch(ctx, true); err != nil {
		log.Error("order history fetch failed", "error", err)
		os.Exit(1)
	}
	fmt.Println("orders:")
	for _, o := range orderUC.Orders() {
		fmt.Printf("  %s  %-12s $%.2f\n", o.ID, o.Status.DisplayName(), o.Total())
	}
}
