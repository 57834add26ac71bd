package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/trestlelabs/trestle/tools/bridge-checker/checkerlogger"
)

var (
	log           = checkerlogger.New("main")
	optionFlagSet = flag.NewFlagSet("script flag set", flag.ExitOnError)

	// Script is the name of the mode the checker runs in.
	Script string

	checkParams = defaultCheckParams()
)

func main() {
	help := parseFlags()
	if help {
		fmt.Println("Usage of the Bridge Checker tool, provide the first argument for the selected mode:\n" +
			"'interactive' - enters the interactive mode.\n" +
			"'check' - runs one end to end transfer check. Run 'bridge-checker check -h' for the list of possible flags.")
		return
	}

	switch Script {
	case "interactive":
		Run()
	case "check":
		if !RunCheck(checkParams) {
			os.Exit(1)
		}
	default:
		log.Warnf("Unknown parameter for script, possible values: check, interactive")
	}
}

func parseFlags() (help bool) {
	if len(os.Args) <= 1 {
		return true
	}
	script := os.Args[1]

	Script = script
	log.Infof("script %s", Script)

	if Script == "check" {
		parseCheckFlags()
	}
	if Script == "help" || Script == "-h" || Script == "--help" {
		return true
	}
	return
}

func parseCheckFlags() {
	sourceURL := optionFlagSet.String("sourceURL", checkParams.SourceURL, "API url of the node hosting the source ledger")
	destinationURL := optionFlagSet.String("destinationURL", checkParams.DestinationURL, "API url of the node hosting the destination ledger")
	sourceLedger := optionFlagSet.String("sourceLedger", checkParams.SourceLedger, "ID of the ledger the tokens are burned on")
	destinationLedger := optionFlagSet.String("destinationLedger", checkParams.DestinationLedger, "ID of the ledger the tokens are expected to arrive on")
	account := optionFlagSet.String("account", checkParams.Account, "base58 encoded account the checker burns from and awaits the credit on")
	amount := optionFlagSet.Uint64("amount", checkParams.Amount, "Amount of tokens moved per round")
	rounds := optionFlagSet.Int("rounds", checkParams.Rounds, "Number of burn and credit rounds")
	timeout := optionFlagSet.Duration("timeout", checkParams.Timeout, "How long the checker waits for the credit of a single round")
	cooldown := optionFlagSet.Duration("cooldown", checkParams.Cooldown, "Delay between the balance polls while waiting for a credit")

	if err := optionFlagSet.Parse(os.Args[2:]); err != nil {
		log.Errorf("Cannot parse first `script` parameter")
		return
	}

	checkParams.SourceURL = *sourceURL
	checkParams.DestinationURL = *destinationURL
	checkParams.SourceLedger = *sourceLedger
	checkParams.DestinationLedger = *destinationLedger
	checkParams.Account = *account
	checkParams.Amount = *amount
	checkParams.Rounds = *rounds
	checkParams.Timeout = *timeout
	checkParams.Cooldown = *cooldown
}

func defaultCheckParams() CheckParams {
	return CheckParams{
		SourceURL:         "http://localhost:8080",
		DestinationURL:    "http://localhost:8090",
		SourceLedger:      "A",
		DestinationLedger: "B",
		Amount:            100,
		Rounds:            1,
		Timeout:           30 * time.Second,
		Cooldown:          2 * time.Second,
	}
}
