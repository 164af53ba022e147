package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/clothcycle/clothcycle-api/tests/helpers"
	"github.com/joho/godotenv"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway ClothCycle MariaDB container for local development.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	if !helpers.DockerAvailable() {
		log.Fatalf("Docker daemon not reachable, cannot start containers\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	ctx := context.Background()

	var db *helpers.Database
	go func() {
		var err error
		db, err = helpers.StartMariaDB(ctx)
		if err != nil {
			log.Fatalf("Failed to start MariaDB container: %v\n", err)
		}
		log.Printf("MariaDB ready at %s:%s (database %s, user %s)\n", db.Host, db.Port, db.Name, db.User)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test containers...\n", sig)
	if db != nil {
		if err := db.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v\n", err)
		}
	}
}
