package services

import (
	"goalboard/internal/models"
	"goalboard/internal/providers"
	"goalboard/internal/structures"
	"math/rand"
)

type GoalServiceInterface interface {
	AddRandomContribution() models.Contribution
	GetSnapshot() *models.Snapshot
	GetProgress() float64
	GetCurrent() int
	GetGoal() int
	GetContributionCount() int
	GetVersion() uint64
	Subscribe(observer models.LedgerObserver) func()
}

type GoalService struct {
	ledger *models.Ledger
	logger providers.Logger
}

func (gs *GoalService) AddRandomContribution() models.Contribution {
	c, snapshot := gs.ledger.AddRandomSampleSnapshot()
	gs.logger.Infof(providers.TypePost, "Contribution %s added: %s %s x%d (+%d), total %d/%d",
		c.ID, c.User, c.Type, c.Amount, models.Score(c), snapshot.Current, snapshot.Goal)
	return c
}

func (gs *GoalService) GetSnapshot() *models.Snapshot {
	return gs.ledger.Snapshot()
}

func (gs *GoalService) GetProgress() float64 {
	return gs.ledger.Progress()
}

func (gs *GoalService) GetCurrent() int {
	return gs.ledger.Current()
}

func (gs *GoalService) GetGoal() int {
	return gs.ledger.Goal()
}

func (gs *GoalService) GetContributionCount() int {
	return gs.ledger.Len()
}

func (gs *GoalService) GetVersion() uint64 {
	return gs.ledger.Version()
}

func (gs *GoalService) Subscribe(observer models.LedgerObserver) func() {
	return gs.ledger.Subscribe(observer)
}

func ledgerOptions(conf *structures.Config) []models.LedgerOption {
	var opts []models.LedgerOption
	if conf.Goal.Seed != 0 {
		opts = append(opts, models.WithRand(rand.New(rand.NewSource(conf.Goal.Seed))))
	}
	return opts
}

func NewGoalService(conf *structures.Config, logger providers.Logger) GoalServiceInterface {
	return NewGoalServiceWithLedger(models.NewLedger(conf.Goal.Target, ledgerOptions(conf)...), logger)
}

// NewGoalServiceWithLedger seeds the given ledger and wraps it.
func NewGoalServiceWithLedger(ledger *models.Ledger, logger providers.Logger) GoalServiceInterface {
	ledger.Initialize()
	logger.Infof(providers.TypeApp, "Ledger seeded with %d contributions, %d/%d points",
		ledger.Len(), ledger.Current(), ledger.Goal())
	return &GoalService{
		ledger: ledger,
		logger: logger,
	}
}
