package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"duckdns"

	"github.com/ogier/pflag"
)

var config = struct {
	Domains string
	Token   string
	IP      string
	Config  string
	LogFile string
}{}

func main() {
	pflag.StringVarP(&config.Domains, "domains", "d", "", "Comma-separated list of Duck DNS domains to update")
	pflag.StringVarP(&config.Token, "token", "t", "", "Duck DNS account token")
	pflag.StringVarP(&config.IP, "ip", "i", "", "IP address to submit (omit to let Duck DNS detect it)")
	pflag.StringVarP(&config.Config, "config", "c", duckdns.DefaultConfigPath(), "Path to a config.json")
	pflag.StringVarP(&config.LogFile, "logfile", "l", duckdns.DefaultLogPath(), "Path to the append-only log file")
	pflag.Parse()

	logger, err := duckdns.OpenLog(config.LogFile)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(logger); err != nil {
		logger.Error("%s", err)
		os.Exit(1)
	}
}

// run resolves credentials and performs the single update attempt.
// Any returned error is fatal to the run;
// provider-reported failures and unrecognized responses are not errors,
// only transport failures and missing mandatory configuration are.
func run(logger *duckdns.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	creds, err := duckdns.ResolveCredentials(config.Domains, config.Token, config.IP, config.Config, logger)
	if err != nil {
		return err
	}

	client, err := duckdns.New(creds, duckdns.WithLogger(logger))
	if err != nil {
		return err
	}

	if _, err := client.Update(context.Background()); err != nil {
		return err
	}
	return nil
}
