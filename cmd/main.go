package main

import (
	"fmt"
	"log"

	"github.com/IMQS/cli"
	"github.com/IMQS/gowinsvc/service"
	"github.com/IMQS/notify"
	"github.com/joho/godotenv"
)

func main() {
	app := cli.App{}
	app.Description = "notify -c=configfile [options] command"
	app.DefaultExec = exec
	app.AddCommand("run", "Run the notify service")
	app.AddValueOption("c", "configfile", "Configuration file. Defaults to the service config location")
	app.AddValueOption("e", "envfile", "Environment file holding NOTIFY_SMS_DSN. Defaults to .env if present")
	app.Run()
}

func exec(cmdName string, args []string, options cli.OptionSet) int {
	if envFile := options["e"]; envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("Error loading environment file: %v\n", err)
			return 1
		}
	} else {
		// .env is optional
		_ = godotenv.Load()
	}

	server := &notify.NotifyServer{}
	if err := server.Config.NewConfig(options["c"]); err != nil {
		fmt.Printf("Error constructing notify config: %v\n", err)
		return 1
	}

	run := func() {
		if err := server.Initialize(); err != nil {
			log.Fatal(err)
		}
		defer server.Close()
		if err := server.StartServer(); err != nil {
			log.Fatal(err)
		}
	}

	switch cmdName {
	case "run":
		if !service.RunAsService(run) {
			run()
		}
	default:
		fmt.Printf("Unknown command %v\n", cmdName)
		return 1
	}

	return 0
}
