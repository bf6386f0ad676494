package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

// HistoryService gives access to the spend history of every wallet, newest
// records first.
type HistoryService struct {
	repoManager ports.RepoManager

	log func(format string, a ...interface{})
}

func NewHistoryService(repoManager ports.RepoManager) *HistoryService {
	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("history service: %s", format)
		log.Debugf(format, a...)
	}
	return &HistoryService{repoManager, logFn}
}

func (hs *HistoryService) GetHistory(
	ctx context.Context, country string,
) ([]*domain.SpendRecord, error) {
	if _, err := domain.GetCurrency(country); err != nil {
		return nil, err
	}
	return hs.repoManager.HistoryRepository().GetHistory(ctx, country)
}

// AddRecord records a spend of the given combo without touching the wallet
// inventory. Remaining is the value left in the wallet after the spend.
func (hs *HistoryService) AddRecord(
	ctx context.Context, country string, combo []domain.Coin, remaining int64,
) (*domain.SpendRecord, error) {
	if _, err := domain.GetCurrency(country); err != nil {
		return nil, err
	}
	if err := validateCombo(combo); err != nil {
		return nil, err
	}

	record := domain.NewSpendRecord(country, combo, remaining, time.Now())
	if _, err := hs.repoManager.HistoryRepository().AddRecord(
		ctx, record,
	); err != nil {
		return nil, err
	}

	hs.log("added spend record %s to %s history", record.ID, country)
	return record, nil
}

func (hs *HistoryService) ResetHistory(
	ctx context.Context, country string,
) (int, error) {
	if _, err := domain.GetCurrency(country); err != nil {
		return 0, err
	}
	count, err := hs.repoManager.HistoryRepository().ResetHistory(ctx, country)
	if err != nil {
		return 0, err
	}

	hs.log("deleted %d spend record(s) of %s history", count, country)
	return count, nil
}
