package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/companion"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/domain/advisory"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/internal/infra/config"
	"github.com/SnackOverflow707/NASA-Space-Apps-2025/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "petcli:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		lat         = flag.Float64("lat", 0, "latitude of the pet")
		lon         = flag.Float64("lon", 0, "longitude of the pet")
		state       = flag.String("state", string(advisory.PetNeutral), "displayed pet state")
		susceptible = flag.Bool("susceptible", false, "answer to the sensitivity prompt")
		surprise    = flag.Bool("surprise", false, "pick a random North American city instead of -lat/-lon")
		baseURL     = flag.String("base-url", cfg.Client.BaseURL, "air pet server address")
		timeout     = flag.Duration("timeout", cfg.Client.Timeout, "request timeout")
		logLevel    = flag.String("log-level", "warn", "log level")
	)
	flag.Parse()

	if err := requireLocation(*surprise); err != nil {
		flag.Usage()
		return err
	}

	displayed, err := advisory.ParsePetState(*state)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.NewText(*logLevel)
	client := companion.NewClient(*baseURL, *timeout)

	if *surprise {
		city, err := client.Surprise(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Surprise! %s (%.4f, %.4f)\n", city.City.Name, city.City.Latitude, city.City.Longitude)
		*lat, *lon = city.City.Latitude, city.City.Longitude
	}

	session := companion.NewSession(client, log)
	session.AnswerSusceptibility(*susceptible)
	session.Display(displayed)

	fmt.Println(advisory.LoadingMessage)
	if err := session.Refresh(ctx, *lat, *lon); err != nil && !errors.Is(err, companion.ErrSuperseded) {
		if companion.IsNoData(err) {
			return fmt.Errorf("no air quality data near (%.4f, %.4f)", *lat, *lon)
		}
		return err
	}

	view := session.Snapshot()
	text, err := session.Advice()
	if err != nil {
		return err
	}
	fmt.Printf("AQI %d (%s)\n", view.Reading.AQI, view.Reading.Category)
	fmt.Printf("[%s] %s\n", view.Displayed, text)
	return nil
}

// requireLocation rejects runs that would silently query (0, 0).
func requireLocation(surprise bool) error {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return checkLocation(set["lat"], set["lon"], surprise)
}

func checkLocation(latSet, lonSet, surprise bool) error {
	switch {
	case surprise:
		return nil
	case latSet && lonSet:
		return nil
	case latSet || lonSet:
		return errors.New("both -lat and -lon are required")
	default:
		return errors.New("pass -lat and -lon, or -surprise")
	}
}
