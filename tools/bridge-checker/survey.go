package main

import (
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cockroachdb/errors"
)

// region survey  //////////////////////////////////////////////////////////////////////////////////////////////

var actionQuestion = &survey.Select{
	Message: "Choose an action",
	Options: actions,
	Default: "Bridge status",
}

var checkMenuQuestion = &survey.Select{
	Message: "Check settings",
	Options: checkMenuOptions,
	Default: startCheck,
}

var settingsQuestion = &survey.Select{
	Message: "Available settings:",
	Options: settingsMenuOptions,
	Default: settingNodes,
}

type checkDetailsSurvey struct {
	Amount  string
	Rounds  string
	Timeout string
}

var checkDetailsQuestions = func(defaultAmount, defaultRounds, defaultTimeout string) []*survey.Question {
	return []*survey.Question{
		{
			Name: "amount",
			Prompt: &survey.Input{
				Message: "Amount of tokens moved per round",
				Default: defaultAmount,
			},
			Validate: func(val interface{}) error {
				if str, ok := val.(string); ok {
					_, err := strconv.ParseUint(str, 10, 64)
					if err == nil {
						return nil
					}
					return errors.New("Incorrect amount")
				}
				return nil
			},
		},
		{
			Name: "rounds",
			Prompt: &survey.Input{
				Message: "Number of burn and credit rounds",
				Default: defaultRounds,
			},
			Validate: func(val interface{}) error {
				if str, ok := val.(string); ok {
					_, err := strconv.Atoi(str)
					if err == nil {
						return nil
					}
					return errors.New("Incorrect number of rounds")
				}
				return nil
			},
		},
		{
			Name: "timeout",
			Prompt: &survey.Input{
				Message: "How long to wait for the credit of a single round, e.g. '30s' or '2m'",
				Default: defaultTimeout,
			},
			Validate: func(val interface{}) error {
				if str, ok := val.(string); ok {
					_, err := time.ParseDuration(str)
					if err == nil {
						return nil
					}
					return errors.New("Incorrect timeout")
				}
				return nil
			},
		},
	}
}

type nodeURLSurvey struct {
	SourceURL      string
	DestinationURL string
}

var nodeURLQuestions = func(defaultSource, defaultDestination string) []*survey.Question {
	return []*survey.Question{
		{
			Name: "sourceURL",
			Prompt: &survey.Input{
				Message: "API url of the source node",
				Default: defaultSource,
			},
		},
		{
			Name: "destinationURL",
			Prompt: &survey.Input{
				Message: "API url of the destination node",
				Default: defaultDestination,
			},
		},
	}
}

type ledgerSurvey struct {
	SourceLedger      string
	DestinationLedger string
}

var ledgerQuestions = func(defaultSource, defaultDestination string) []*survey.Question {
	return []*survey.Question{
		{
			Name: "sourceLedger",
			Prompt: &survey.Select{
				Message: "Ledger the tokens are burned on",
				Options: ledgerIDs,
				Default: defaultSource,
			},
		},
		{
			Name: "destinationLedger",
			Prompt: &survey.Select{
				Message: "Ledger the tokens are expected to arrive on",
				Options: ledgerIDs,
				Default: defaultDestination,
			},
		},
	}
}

var accountQuestion = func(defaultAccount string) *survey.Input {
	return &survey.Input{
		Message: "base58 encoded account the checker burns from",
		Default: defaultAccount,
	}
}

var burnAmountQuestion = func(defaultAmount string) *survey.Input {
	return &survey.Input{
		Message: "Amount of tokens to burn",
		Default: defaultAmount,
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
