package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/payroll/bootstrap"
	"timekeeper.com/timekeeper/payroll/repository"
)

func confirm(removeEmployees bool) bool {
	what := "all punch records and upload history"
	if removeEmployees {
		what += " and all employee profiles"
	}
	fmt.Printf("This deletes %s. Type 'yes' to continue: ", what)

	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}

func main() {
	removeEmployees := flag.Bool("remove-employees", false, "also delete employee profiles")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if !*yes && !confirm(*removeEmployees) {
		fmt.Println("Aborted")
		return
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	dm, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	result, err := repository.NewPunchRepository(dm).ClearAll(ctx, *removeEmployees)
	if err != nil {
		log.Fatalf("failed to clear data: %v", err)
	}
	fmt.Printf("[INFO] deleted %d punches, %d upload histories, %d employees\n", result.Punches, result.Histories, result.Employees)
}
