// keys generates the base64 secrets the service needs.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
)

func main() {
	size := flag.Int("size", 32, "key size in bytes")
	flag.Parse()

	key := make([]byte, *size)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintln(os.Stderr, "rand:", err)
		os.Exit(1)
	}
	fmt.Println(base64.StdEncoding.EncodeToString(key))
}
