package main

import (
	"fmt"
	"os"

	"github.com/iotaledger/hive.go/identity"
	"github.com/mr-tron/base58"
)

func main() {
	randomIdentity := identity.GenerateIdentity()
	id := randomIdentity.ID()

	// If the file doesn't exist, create it, or truncate the file
	f, err := os.Create("random-account.txt")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	f.WriteString("account:" + base58.Encode(id[:]) + "\n")
	f.WriteString("publicKey:" + randomIdentity.PublicKey().String())

	fmt.Println("New random account generated (usable as genesis, authority or test account) and written in random-account.txt")
}
