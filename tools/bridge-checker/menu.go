package main

import (
	"fmt"

	"github.com/trestlelabs/trestle/client"
)

// region Printer /////////////////////////////////////////////////////////////////////////////////////////////////////////

type Printer struct {
	mode *Mode
}

func NewPrinter(mode *Mode) *Printer {
	return &Printer{
		mode: mode,
	}
}

func (p *Printer) Println(s string, indent int) {
	pre := "█"
	for i := 0; i < indent; i++ {
		pre += "▓"
	}
	fmt.Println(pre, s)
}

func (p *Printer) PrintlnPoint(s string, indent int) {
	pre := ""
	for i := 0; i < indent; i++ {
		pre += " "
	}
	fmt.Println(pre, "▀▄", s)
}

func (p *Printer) PrintlnInput(s string) {
	fmt.Println("█▓>>", s)
}

func (p *Printer) PrintThickLine() {
	fmt.Println("\n  ooo▄▄▓░░▀▀▀▀▄▓▓░░▄▄▄▓▓░░▄▒▄▀█▒▓▄▓▓░░▄▄▒▄▄█▒▓▄▄▀▀▄▓▒▄▄█▒▓▓▀▓▓░░░░█▒▄▄█▒▓░▄▄ooo")
	fmt.Println()
}

func (p *Printer) PrintTopLine() {
	fmt.Println("▀▄▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▄▀")
}

func (p *Printer) PrintLine() {
	fmt.Println("▄▀▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▀▄")
}

func (p *Printer) printBanner() {
	fmt.Println("▄▄▄█████▓ ██▀███  ▓█████   ██████ ▄▄▄█████▓ ██▓    ▓█████\n▓  ██▒ ▓▒▓██ ▒ ██▒▓█   ▀ ▒██    ▒ ▓  ██▒ ▓▒▓██▒    ▓█   ▀\n▒ ▓██░ ▒░▓██ ░▄█ ▒▒███   ░ ▓██▄   ▒ ▓██░ ▒░▒██░    ▒███  \n░ ▓██▓ ░ ▒██▀▀█▄  ▒▓█  ▄   ▒   ██▒░ ▓██▓ ░ ▒██░    ▒▓█  ▄\n  ▒██▒ ░ ░██▓ ▒██▒░▒████▒▒██████▒▒  ▒██▒ ░ ░██████▒░▒████▒\n  ▒ ░░   ░ ▒▓ ░▒▓░░░ ▒░ ░▒ ▒▓▒ ▒ ░  ▒ ░░   ░ ▒░▓  ░░░ ▒░ ░\n    ░      ░▒ ░ ▒░ ░ ░  ░░ ░▒  ░ ░    ░    ░ ░ ▒  ░ ░ ░  ░\n  ░        ░░   ░    ░   ░  ░  ░    ░        ░ ░      ░   \n            ░        ░  ░      ░               ░  ░   ░  ░\n\n            ▄████▄   ██░ ██ ▓█████  ▄████▄   ██ ▄█▀▓█████  ██▀███  \n           ▒██▀ ▀█  ▓██░ ██▒▓█   ▀ ▒██▀ ▀█   ██▄█▒ ▓█   ▀ ▓██ ▒ ██▒\n           ▒▓█    ▄ ▒██▀▀██░▒███   ▒▓█    ▄ ▓███▄░ ▒███   ▓██ ░▄█ ▒\n           ▒▓▓▄ ▄██▒░▓█ ░██ ▒▓█  ▄ ▒▓▓▄ ▄██▒▓██ █▄ ▒▓█  ▄ ▒██▀▀█▄  \n           ▒ ▓███▀ ░░▓█▒░██▓░▒████▒▒ ▓███▀ ░▒██▒ █▄░▒████▒░██▓ ▒██▒\n           ░ ░▒ ▒  ░ ▒ ░░▒░▒░░ ▒░ ░░ ░▒ ▒  ░▒ ▒▒ ▓▒░░ ▒░ ░░ ▒▓ ░▒▓░\n             ░  ▒    ▒ ░▒░ ░ ░ ░  ░  ░  ▒   ░ ░▒ ▒░ ░ ░  ░  ░▒ ░ ▒░\n           ░         ░  ░░ ░   ░   ░        ░ ░░ ░    ░     ░░   ░ \n           ░ ░       ░  ░  ░   ░  ░░ ░      ░  ░      ░  ░   ░     \n           ░                       ░                               ")
	p.PrintThickLine()
	p.Println("Interactive mode enabled", 1)
	fmt.Println()
}

func (p *Printer) BridgeStatus() {
	p.PrintTopLine()
	p.Println("Bridge status:", 2)

	for _, side := range []struct {
		url    string
		ledger string
	}{
		{p.mode.Config.SourceURL, p.mode.Config.SourceLedger},
		{p.mode.Config.DestinationURL, p.mode.Config.DestinationLedger},
	} {
		api := client.NewTrestleAPI(side.url)
		info, err := api.LedgerInfo(side.ledger)
		if err != nil {
			p.PrintlnPoint(fmt.Sprintf("Ledger %s on %s: unreachable (%s)", side.ledger, side.url, err), 2)
			continue
		}
		p.PrintlnPoint(fmt.Sprintf("Ledger %s on %s: supply %d, latest sequence %d", side.ledger, side.url, info.TotalSupply, info.LatestSequence), 2)
		if p.mode.Config.Account != "" {
			if balance, err := accountBalance(api, side.ledger, p.mode.Config.Account); err == nil {
				p.PrintlnPoint(fmt.Sprintf("Account balance: %d", balance), 4)
			}
		}
	}

	journalFound := false
	for _, url := range []string{p.mode.Config.SourceURL, p.mode.Config.DestinationURL} {
		api := client.NewTrestleAPI(url)
		journal, err := api.Journal()
		if err != nil {
			continue
		}
		p.PrintlnPoint(fmt.Sprintf("Relay journal on %s: watermarks %v, %d pending, %d confirmed", url, journal.Watermarks, journal.NumPending, journal.NumConfirmed), 2)
		journalFound = true
		break
	}
	if !journalFound {
		p.PrintlnPoint("Relay journal: not reachable on either node", 2)
	}

	p.PrintlnPoint(fmt.Sprintf("Checks run: %d, passed: %d", p.mode.checksRun.Load(), p.mode.checksPassed.Load()), 2)
	p.PrintlnPoint(fmt.Sprintf("Burns sent: %d", p.mode.burnsSent.Load()), 2)

	p.PrintLine()
}

func (p *Printer) CheckerSettings() {
	p.PrintTopLine()
	p.Println("Current settings:", 1)
	p.PrintlnPoint(fmt.Sprintf("Direction: %s -> %s", p.mode.Config.SourceLedger, p.mode.Config.DestinationLedger), 2)
	p.PrintlnPoint(fmt.Sprintf("Account: %s", p.mode.Config.Account), 2)
	p.PrintlnPoint(fmt.Sprintf("Amount: %d, Rounds: %d, Timeout: %s", p.mode.Config.Amount, p.mode.Config.Rounds, p.mode.Config.timeout), 2)
	p.PrintLine()
	fmt.Println()
}

func (p *Printer) Settings() {
	p.PrintTopLine()
	p.Println("Current settings:", 0)
	p.Println(fmt.Sprintf("Source node: %s (ledger %s)", p.mode.Config.SourceURL, p.mode.Config.SourceLedger), 1)
	p.Println(fmt.Sprintf("Destination node: %s (ledger %s)", p.mode.Config.DestinationURL, p.mode.Config.DestinationLedger), 1)
	p.Println(fmt.Sprintf("Account: %s", p.mode.Config.Account), 1)
	p.PrintLine()
	fmt.Println()
}

func (p *Printer) FarewellMessage() {
	p.PrintTopLine()
	fmt.Println("           GOODBYE... the bridge keeps relaying without us ;)")
	p.PrintLine()
}

func (p *Printer) CheckPassedMessage() {
	p.Println("Check passed, supply conserved.", 2)
	fmt.Println()
}

func (p *Printer) CheckFailedMessage() {
	p.Println("Check failed, see the log above for the reason.", 2)
	fmt.Println()
}

func (p *Printer) AccountWarning() {
	p.Println("No account configured!", 2)
	p.PrintlnPoint("Set a funded account with the 'Set account' option in the settings.", 2)
	fmt.Println()
}

func (p *Printer) URLWarning() {
	p.Println("Could not connect to a provided API endpoint, urls not updated.", 2)
	fmt.Println()
}

func (p *Printer) BurnFailedWarning(err error) {
	p.Println(fmt.Sprintf("Burn failed: %s", err), 2)
	fmt.Println()
}

func (p *Printer) BurnedMessage(sequence, amount uint64) {
	p.Println(fmt.Sprintf("Burned %d tokens, sequence %d.", amount, sequence), 2)
	fmt.Println()
}

func (p *Printer) DirectionMessage() {
	p.Println(fmt.Sprintf("Direction is now %s -> %s.", p.mode.Config.SourceLedger, p.mode.Config.DestinationLedger), 2)
	fmt.Println()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
