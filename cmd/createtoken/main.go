package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/security"
)

func main() {
	username := flag.String("user", "", "user name (required)")
	role := flag.String("role", security.RoleHR, "role: hr, admin or staff")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *username == "" {
		log.Fatal("-user is required")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	secret, err := cfg.Secret()
	if err != nil {
		log.Fatal(err)
	}

	token, err := security.CreateIdentityToken(security.Principal{Username: *username, Role: *role}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
