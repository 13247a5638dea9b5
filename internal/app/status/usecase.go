package status

import (
	"context"
	"errors"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/app/simulation"
	"gridharvest/internal/domain/economy"
)

type EconomyReader interface {
	Info() simulation.BuildInfo
	Economy() []economy.Balance
}

type UseCase struct {
	World EconomyReader
}

func (u UseCase) Execute(_ context.Context, _ Request) (Response, error) {
	if u.World == nil {
		return Response{}, errors.New("status: no world")
	}
	info := u.World.Info()
	if info.BuildID == "" {
		return Response{}, ports.ErrNotBuilt
	}
	balances := u.World.Economy()
	capped := []string{}
	for _, b := range balances {
		if b.AtCap {
			capped = append(capped, string(b.Type))
		}
	}
	return Response{BuildID: info.BuildID, Seed: info.Seed, Balances: balances, Capped: capped}, nil
}
