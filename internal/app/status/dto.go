package status

import "gridharvest/internal/domain/economy"

type Request struct{}

type Response struct {
	BuildID  string            `json:"build_id"`
	Seed     int64             `json:"seed"`
	Balances []economy.Balance `json:"balances"`
	Capped   []string          `json:"capped"`
}
