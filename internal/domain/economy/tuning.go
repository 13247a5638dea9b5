package economy

import "gridharvest/internal/domain/world"

const (
	// HarvestThreshold is the progress a harvester must accumulate for one
	// extraction; it is also the amount deducted from the resource.
	HarvestThreshold = 0.1
	// HarvestSpeed is progress gained per second of harvesting.
	HarvestSpeed = 0.25

	GemYieldPerExtraction     = 5
	MineralYieldPerExtraction = 20

	DefaultGemCap     = 500
	DefaultMineralCap = 2000

	DefaultGemAmount     = 10.0
	DefaultMineralAmount = 10.0
)

func DefaultYields() YieldTable {
	return YieldTable{
		world.ResourceGem:     GemYieldPerExtraction,
		world.ResourceMineral: MineralYieldPerExtraction,
	}
}

func DefaultCaps() map[world.ResourceType]int {
	return map[world.ResourceType]int{
		world.ResourceGem:     DefaultGemCap,
		world.ResourceMineral: DefaultMineralCap,
	}
}

func DefaultAmounts() map[world.ResourceType]float64 {
	return map[world.ResourceType]float64{
		world.ResourceGem:     DefaultGemAmount,
		world.ResourceMineral: DefaultMineralAmount,
	}
}
