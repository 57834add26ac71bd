package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/iotaledger/hive.go/types"
	"go.uber.org/atomic"

	"github.com/trestlelabs/trestle/client"
)

var printer *Printer

type InteractiveConfig struct {
	SourceURL         string `json:"sourceURL"`
	DestinationURL    string `json:"destinationURL"`
	SourceLedger      string `json:"sourceLedger"`
	DestinationLedger string `json:"destinationLedger"`
	Account           string `json:"account"`
	Amount            uint64 `json:"amount"`
	Rounds            int    `json:"rounds"`
	TimeoutStr        string `json:"timeout"`
	CooldownStr       string `json:"cooldown"`

	timeout  time.Duration
	cooldown time.Duration
}

var configJSON = `{
	"sourceURL": "http://localhost:8080",
	"destinationURL": "http://localhost:8090",
	"sourceLedger": "A",
	"destinationLedger": "B",
	"account": "",
	"amount": 100,
	"rounds": 1,
	"timeout": "30s",
	"cooldown": "2s"
}`

var defaultInteractiveConfig = InteractiveConfig{
	SourceURL:         "http://localhost:8080",
	DestinationURL:    "http://localhost:8090",
	SourceLedger:      "A",
	DestinationLedger: "B",
	Amount:            100,
	Rounds:            1,
	timeout:           30 * time.Second,
	cooldown:          2 * time.Second,
}

// region survey selections  ///////////////////////////////////////////////////////////////////////////////////////////////////////

type action int

const (
	actionBridgeStatus action = iota
	actionCheckMenu
	actionBurn
	actionSwapDirection
	actionSettings
	shutdown
)

var actions = []string{"Bridge status", "Run transfer check", "Burn tokens", "Swap direction", "Settings", "Close"}

const (
	startCheck   = "Start the check"
	checkDetails = "Update amount, rounds and timeout"
	back         = "Go back"
)

var checkMenuOptions = []string{startCheck, checkDetails, back}

const (
	settingNodes   = "Set node API urls"
	settingLedgers = "Set ledger IDs"
	settingAccount = "Set account"
)

var settingsMenuOptions = []string{settingNodes, settingLedgers, settingAccount, back}

var ledgerIDs = []string{"A", "B"}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////

// region interactive ///////////////////////////////////////////////////////////////////////////////////////////////////////

func Run() {
	mode := NewInteractiveMode()

	printer = NewPrinter(mode)

	printer.printBanner()
	mode.loadConfig()
	time.Sleep(time.Millisecond * 100)
	go mode.runBackgroundTasks()
	mode.menu()

	for {
		select {
		case <-mode.mainMenu:
			mode.menu()
		case <-mode.shutdown:
			printer.FarewellMessage()
			mode.saveConfigsToFile()
			os.Exit(0)
			return
		}
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////

// region Mode /////////////////////////////////////////////////////////////////////////////////////////////////////////

type Mode struct {
	shutdown chan types.Empty
	mainMenu chan types.Empty
	action   chan action

	nextAction string

	Config InteractiveConfig

	checksRun    *atomic.Uint64
	checksPassed *atomic.Uint64
	burnsSent    *atomic.Uint64

	stdOutMutex sync.Mutex
}

func NewInteractiveMode() *Mode {
	return &Mode{
		action:   make(chan action),
		shutdown: make(chan types.Empty),
		mainMenu: make(chan types.Empty),

		Config:       defaultInteractiveConfig,
		checksRun:    atomic.NewUint64(0),
		checksPassed: atomic.NewUint64(0),
		burnsSent:    atomic.NewUint64(0),
	}
}

func (m *Mode) runBackgroundTasks() {
	for act := range m.action {
		switch act {
		case actionBridgeStatus:
			m.bridgeStatus()
			m.mainMenu <- types.Void
		case actionCheckMenu:
			go m.checkMenu()
		case actionBurn:
			m.burnTokens()
			m.mainMenu <- types.Void
		case actionSwapDirection:
			m.swapDirection()
			m.mainMenu <- types.Void
		case actionSettings:
			go m.settingsMenu()
		case shutdown:
			m.shutdown <- types.Void
		}
	}
}

func (m *Mode) menu() {
	m.stdOutMutex.Lock()
	defer m.stdOutMutex.Unlock()
	err := survey.AskOne(actionQuestion, &m.nextAction)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	m.onMenuAction()
}

func (m *Mode) onMenuAction() {
	switch m.nextAction {
	case actions[actionBridgeStatus]:
		m.action <- actionBridgeStatus
	case actions[actionCheckMenu]:
		m.action <- actionCheckMenu
	case actions[actionBurn]:
		m.action <- actionBurn
	case actions[actionSwapDirection]:
		m.action <- actionSwapDirection
	case actions[actionSettings]:
		m.action <- actionSettings
	case actions[shutdown]:
		m.action <- shutdown
	}
}

func (m *Mode) bridgeStatus() {
	m.stdOutMutex.Lock()
	defer m.stdOutMutex.Unlock()

	printer.BridgeStatus()
}

func (m *Mode) checkMenu() {
	m.stdOutMutex.Lock()
	defer m.stdOutMutex.Unlock()
	printer.CheckerSettings()
	var submenu string
	err := survey.AskOne(checkMenuQuestion, &submenu)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	m.checkSubMenu(submenu)
}

func (m *Mode) checkSubMenu(menuType string) {
	switch menuType {
	case checkDetails:
		var detailsSurvey checkDetailsSurvey
		err := survey.Ask(checkDetailsQuestions(
			strconv.FormatUint(m.Config.Amount, 10),
			strconv.Itoa(m.Config.Rounds),
			m.Config.timeout.String(),
		), &detailsSurvey)
		if err != nil {
			fmt.Println(err.Error())
			m.mainMenu <- types.Void
			return
		}
		m.parseCheckDetails(detailsSurvey)

	case startCheck:
		if m.Config.Account == "" {
			printer.AccountWarning()
			m.mainMenu <- types.Void
			return
		}
		m.startCheck()
		m.mainMenu <- types.Void
		return

	case back:
		m.mainMenu <- types.Void
		return
	}
	m.action <- actionCheckMenu
}

func (m *Mode) startCheck() {
	m.checksRun.Inc()
	if RunCheck(m.checkParams()) {
		m.checksPassed.Inc()
		printer.CheckPassedMessage()
		return
	}
	printer.CheckFailedMessage()
}

func (m *Mode) checkParams() CheckParams {
	return CheckParams{
		SourceURL:         m.Config.SourceURL,
		DestinationURL:    m.Config.DestinationURL,
		SourceLedger:      m.Config.SourceLedger,
		DestinationLedger: m.Config.DestinationLedger,
		Account:           m.Config.Account,
		Amount:            m.Config.Amount,
		Rounds:            m.Config.Rounds,
		Timeout:           m.Config.timeout,
		Cooldown:          m.Config.cooldown,
	}
}

func (m *Mode) burnTokens() {
	m.stdOutMutex.Lock()
	defer m.stdOutMutex.Unlock()

	if m.Config.Account == "" {
		printer.AccountWarning()
		return
	}
	answer := ""
	err := survey.AskOne(burnAmountQuestion(strconv.FormatUint(m.Config.Amount, 10)), &answer)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	amount, err := strconv.ParseUint(answer, 10, 64)
	if err != nil {
		return
	}

	api := client.NewTrestleAPI(m.Config.SourceURL)
	res, err := api.Bridge(m.Config.SourceLedger, m.Config.Account, amount)
	if err != nil {
		printer.BurnFailedWarning(err)
		return
	}
	m.burnsSent.Inc()
	printer.BurnedMessage(res.Record.Sequence, amount)
}

func (m *Mode) swapDirection() {
	m.stdOutMutex.Lock()
	defer m.stdOutMutex.Unlock()

	m.Config.SourceURL, m.Config.DestinationURL = m.Config.DestinationURL, m.Config.SourceURL
	m.Config.SourceLedger, m.Config.DestinationLedger = m.Config.DestinationLedger, m.Config.SourceLedger
	printer.DirectionMessage()
}

func (m *Mode) settingsMenu() {
	m.stdOutMutex.Lock()
	defer m.stdOutMutex.Unlock()
	printer.Settings()
	var submenu string
	err := survey.AskOne(settingsQuestion, &submenu)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	m.settingsSubMenu(submenu)
}

func (m *Mode) settingsSubMenu(menuType string) {
	switch menuType {
	case settingNodes:
		var nodesSurvey nodeURLSurvey
		err := survey.Ask(nodeURLQuestions(m.Config.SourceURL, m.Config.DestinationURL), &nodesSurvey)
		if err != nil {
			fmt.Println(err.Error())
			m.mainMenu <- types.Void
			return
		}
		m.validateAndSetURLs(nodesSurvey)

	case settingLedgers:
		var ledgersSurvey ledgerSurvey
		err := survey.Ask(ledgerQuestions(m.Config.SourceLedger, m.Config.DestinationLedger), &ledgersSurvey)
		if err != nil {
			fmt.Println(err.Error())
			m.mainMenu <- types.Void
			return
		}
		m.Config.SourceLedger = ledgersSurvey.SourceLedger
		m.Config.DestinationLedger = ledgersSurvey.DestinationLedger

	case settingAccount:
		var account string
		err := survey.AskOne(accountQuestion(m.Config.Account), &account)
		if err != nil {
			fmt.Println(err.Error())
			m.mainMenu <- types.Void
			return
		}
		m.Config.Account = account

	case back:
		m.mainMenu <- types.Void
		return
	}
	m.action <- actionSettings
}

func (m *Mode) validateAndSetURLs(nodesSurvey nodeURLSurvey) {
	if !validateURL(nodesSurvey.SourceURL) || !validateURL(nodesSurvey.DestinationURL) {
		printer.URLWarning()
		return
	}
	m.Config.SourceURL = nodesSurvey.SourceURL
	m.Config.DestinationURL = nodesSurvey.DestinationURL
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region parsers /////////////////////////////////////////////////////////////////////////////////////////////////////////////

func (m *Mode) parseCheckDetails(details checkDetailsSurvey) {
	amount, err := strconv.ParseUint(details.Amount, 10, 64)
	if err != nil {
		return
	}
	rounds, err := strconv.Atoi(details.Rounds)
	if err != nil {
		return
	}
	timeout, err := time.ParseDuration(details.Timeout)
	if err != nil {
		return
	}
	m.Config.Amount = amount
	m.Config.Rounds = rounds
	m.Config.timeout = timeout
}

// load the config file
func (m *Mode) loadConfig() {
	// open config file
	file, err := os.Open("config.json")
	if err != nil {
		if !os.IsNotExist(err) {
			panic(err)
		}

		if err = os.WriteFile("config.json", []byte(configJSON), 0o644); err != nil {
			panic(err)
		}
		if file, err = os.Open("config.json"); err != nil {
			panic(err)
		}
	}
	defer file.Close()

	// decode config file
	if err = json.NewDecoder(file).Decode(&m.Config); err != nil {
		panic(err)
	}
	// parse durations
	d, err := time.ParseDuration(m.Config.TimeoutStr)
	if err != nil {
		d = 30 * time.Second
	}
	c, err := time.ParseDuration(m.Config.CooldownStr)
	if err != nil {
		c = 2 * time.Second
	}
	m.Config.timeout = d
	m.Config.cooldown = c
}

func (m *Mode) saveConfigsToFile() {
	// open config file
	file, err := os.Open("config.json")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	// update durations
	m.Config.TimeoutStr = m.Config.timeout.String()
	m.Config.CooldownStr = m.Config.cooldown.String()

	jsonConfigs, _ := json.MarshalIndent(m.Config, "", "    ")
	if err = os.WriteFile("config.json", jsonConfigs, 0o644); err != nil {
		panic(err)
	}
}

func validateURL(url string) (ok bool) {
	clt := client.NewTrestleAPI(url)
	_, err := clt.Info()
	if err != nil {
		return
	}
	return true
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
