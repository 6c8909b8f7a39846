package core

import (
	"fmt"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/outwriter"
)

// ExecuteHistoryList prints stored scans, newest first. An empty
// ServiceFilter lists every service.
func ExecuteHistoryList(cfg *contract.Config, mgr contract.HistoryManager) error {
	store, err := scanStoreOf(mgr)
	if err != nil {
		return err
	}

	scans, err := store.GetScans(cfg.ServiceFilter, cfg.ResultLimit)
	if err != nil {
		return fmt.Errorf("error loading scan history: %w", err)
	}
	if len(scans) == 0 {
		fmt.Println("No scan history found.")
		return nil
	}

	return outwriter.NewOutWriter().WriteHistory(scans, cfg)
}

// ExecuteHistoryStatus prints the history store's backend and row counts.
func ExecuteHistoryStatus(cfg *contract.Config, mgr contract.HistoryManager) error {
	store, err := scanStoreOf(mgr)
	if err != nil {
		return err
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("error getting history status: %w", err)
	}

	return outwriter.NewOutWriter().WriteStatus(&status, cfg)
}
