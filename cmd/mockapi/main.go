package main

import (
	"github.com/bryantlimm/setaside-go/internal/config"
	"github.com/bryantlimm/setaside-go/internal/mockapi"
	"github.com/joho/godotenv"
)

func main() {
	//.envは任意
	_ = godotenv.Load()

	cfg, err := config.LoadMockAPI()
	if err != nil {
		panic(err)
	}

	srv := mockapi.New(cfg.JWTSecret, cfg.BcryptCost)

	//デモ用の初期データ
	if _, err := srv.SeedStaff("staff@example.com", "staffpass123", "Store Staff"); err != nil {
		panic(err)
	}
	srv.SeedProduct("Latte", "drinks", 3.99)
	srv.SeedProduct("Croissant", "bakery", 2.49)
	srv.SeedProduct("Lunch Box", "meals", 12.99)

	if err := srv.Start(":" + cfg.Port); err != nil {
		panic(err)
	}
}
