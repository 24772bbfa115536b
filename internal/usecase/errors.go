package usecase

import "errors"

var (
	// カートが空のまま注文しようとした（ネットワークには出さない）
	ErrEmptyCart = errors.New("cart is empty")

	// staff権限が必要な操作
	ErrStaffOnly = errors.New("staff role required")

	// 終端ステータスからは進められない
	ErrTerminalStatus = errors.New("order is already in a terminal status")

	// 対象注文がローカル一覧に無い
	ErrOrderNotLoaded = errors.New("order is not in the loaded list")

	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)
