package main

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/trestlelabs/trestle/client"
)

// CheckParams holds the configuration of a single end to end transfer check.
type CheckParams struct {
	SourceURL         string
	DestinationURL    string
	SourceLedger      string
	DestinationLedger string
	Account           string
	Amount            uint64
	Rounds            int
	Timeout           time.Duration
	Cooldown          time.Duration
}

// RunCheck burns tokens on the source ledger and waits for the relay to credit them on the
// destination ledger, verifying after every round that no tokens were created or lost on the way.
func RunCheck(params CheckParams) (ok bool) {
	sourceAPI := client.NewTrestleAPI(params.SourceURL)
	destinationAPI := client.NewTrestleAPI(params.DestinationURL)

	if params.Account == "" {
		log.Error("No account configured, set one with the -account flag")
		return false
	}

	sourceSupply, destinationSupply, err := readSupplies(sourceAPI, destinationAPI, params)
	if err != nil {
		log.Errorf("%s", err)
		return false
	}
	totalSupply := sourceSupply + destinationSupply
	log.Infof("Supply before the check: %s holds %d, %s holds %d, %d total",
		params.SourceLedger, sourceSupply, params.DestinationLedger, destinationSupply, totalSupply)

	balance, err := accountBalance(sourceAPI, params.SourceLedger, params.Account)
	if err != nil {
		log.Errorf("%s", err)
		return false
	}
	needed := params.Amount * uint64(params.Rounds)
	if balance < needed {
		log.Errorf("Account %s holds %d on %s but the check needs %d, fund it through the genesis allocation or a transfer",
			params.Account, balance, params.SourceLedger, needed)
		return false
	}

	for i := 0; i < params.Rounds; i++ {
		destinationBalance, err := accountBalance(destinationAPI, params.DestinationLedger, params.Account)
		if err != nil {
			log.Errorf("%s", err)
			return false
		}

		bridgeRes, err := sourceAPI.Bridge(params.SourceLedger, params.Account, params.Amount)
		if err != nil {
			log.Errorf("Bridging on %s failed: %s", params.SourceLedger, err)
			return false
		}
		log.Infof("Round %d: burned %d on %s, sequence %d", i+1, params.Amount, params.SourceLedger, bridgeRes.Record.Sequence)

		if err := awaitCredit(destinationAPI, params, destinationBalance+params.Amount); err != nil {
			log.Errorf("Round %d: %s", i+1, err)
			return false
		}
		log.Infof("Round %d: credit arrived on %s", i+1, params.DestinationLedger)

		sourceSupply, destinationSupply, err = readSupplies(sourceAPI, destinationAPI, params)
		if err != nil {
			log.Errorf("%s", err)
			return false
		}
		if sourceSupply+destinationSupply != totalSupply {
			log.Errorf("Supply not conserved: %s holds %d, %s holds %d, expected a total of %d",
				params.SourceLedger, sourceSupply, params.DestinationLedger, destinationSupply, totalSupply)
			return false
		}
	}

	reportJournal(sourceAPI, destinationAPI)

	log.Infof("Check passed: %d round(s) of %d tokens relayed from %s to %s, supply still %d",
		params.Rounds, params.Amount, params.SourceLedger, params.DestinationLedger, totalSupply)
	return true
}

func readSupplies(sourceAPI, destinationAPI *client.TrestleAPI, params CheckParams) (sourceSupply, destinationSupply uint64, err error) {
	sourceRes, err := sourceAPI.LedgerSupply(params.SourceLedger)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "supply query of ledger %s on %s failed", params.SourceLedger, sourceAPI.BaseURL())
	}
	destinationRes, err := destinationAPI.LedgerSupply(params.DestinationLedger)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "supply query of ledger %s on %s failed", params.DestinationLedger, destinationAPI.BaseURL())
	}
	return sourceRes.TotalSupply, destinationRes.TotalSupply, nil
}

func accountBalance(api *client.TrestleAPI, ledgerID, account string) (uint64, error) {
	res, err := api.Balance(ledgerID, account)
	if err != nil {
		return 0, errors.Wrapf(err, "balance query of %s on ledger %s failed", account, ledgerID)
	}
	return res.Balance, nil
}

// awaitCredit polls the destination account until its balance reaches the expected value. The
// relay needs to observe the burn and the destination node needs to include the mint first, so
// the poll backs off with the configured cooldown.
func awaitCredit(api *client.TrestleAPI, params CheckParams, expected uint64) error {
	deadline := time.Now().Add(params.Timeout)
	for {
		balance, err := accountBalance(api, params.DestinationLedger, params.Account)
		if err != nil {
			return err
		}
		if balance >= expected {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.Errorf("credit did not arrive on %s within %s, account %s still holds %d of expected %d",
				params.DestinationLedger, params.Timeout, params.Account, balance, expected)
		}
		time.Sleep(params.Cooldown)
	}
}

// reportJournal logs the relay journal of the node that runs the relay plugin. Either node may
// host it, so both are tried and a missing journal is not an error.
func reportJournal(sourceAPI, destinationAPI *client.TrestleAPI) {
	for _, api := range []*client.TrestleAPI{sourceAPI, destinationAPI} {
		journal, err := api.Journal()
		if err != nil {
			continue
		}
		log.Infof("Relay journal on %s: watermarks %v, %d pending, %d confirmed",
			api.BaseURL(), journal.Watermarks, journal.NumPending, journal.NumConfirmed)
		return
	}
	log.Warn("No relay journal reachable on either node")
}
