package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Advisor/internal/calculate"
	"github.com/Alias1177/Advisor/internal/config"
	"github.com/Alias1177/Advisor/internal/database"
	"github.com/Alias1177/Advisor/internal/entry"
	"github.com/Alias1177/Advisor/internal/market"
	"github.com/Alias1177/Advisor/internal/notifier"
	"github.com/Alias1177/Advisor/internal/provider"
	"github.com/Alias1177/Advisor/internal/risk"
	"github.com/Alias1177/Advisor/internal/scanner"
	engine "github.com/Alias1177/Advisor/internal/signal"
	"github.com/Alias1177/Advisor/internal/validate"
	"github.com/Alias1177/Advisor/models"
)

// report is the JSON document the CLI prints for one analysis.
type report struct {
	Symbol     string                    `json:"symbol"`
	Indicators *models.IndicatorSnapshot `json:"indicators"`
	Risk       *models.RiskProfile       `json:"risk"`
	Context    *models.MarketContext     `json:"market_context,omitempty"`
	Decision   *models.SignalDecision    `json:"decision"`
	Entry      *models.EntryOptimization `json:"entry_optimization,omitempty"`
	Sizing     *risk.PositionPlan        `json:"position_sizing,omitempty"`
}

func main() {
	scanOnce := flag.Bool("scan", false, "run one after-hours sweep and exit")
	watch := flag.Bool("watch", false, "keep running the after-hours scanner on its schedule")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if cfg.TwelveAPIKey == "" {
		log.Fatal().Msg("TWELVE_API_KEY is required")
	}

	client := provider.NewClient(provider.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *scanOnce || *watch {
		runScanner(ctx, cfg, client, *watch)
		return
	}

	if err := runAnalysis(ctx, cfg, client); err != nil {
		log.Fatal().Err(err).Str("symbol", cfg.Symbol).Msg("analysis failed")
	}
}

func runAnalysis(ctx context.Context, cfg *config.Config, client *provider.Client) error {
	candles, err := client.GetCandles(ctx, cfg.Symbol, cfg.Interval, cfg.CandleCount)
	if err != nil {
		return fmt.Errorf("fetching candles: %w", err)
	}

	indicators, err := calculate.CalculateAllIndicators(candles)
	if err != nil {
		return fmt.Errorf("computing indicators: %w", err)
	}

	profile, err := risk.CalculateRiskReward(candles, indicators)
	if err != nil {
		return fmt.Errorf("computing risk profile: %w", err)
	}

	marketCtx := market.NewCollector(client, cfg.VIXSymbol, cfg.IndexSymbol).Context(ctx)

	var fundamentals *models.Fundamentals
	if cfg.FetchFundamental {
		fundamentals, err = client.GetFundamentals(ctx, cfg.Symbol)
		if err != nil {
			log.Warn().Err(err).Msg("fundamentals unavailable, deciding without them")
			fundamentals = nil
		}
	}

	priceChange := dailyChangePercent(candles)

	var earningsDays *int
	if cfg.EarningsDays >= 0 {
		earningsDays = &cfg.EarningsDays
	}

	eng := engine.New()
	decision := eng.Decide(engine.Input{
		Indicators:         indicators,
		Risk:               profile,
		Context:            marketCtx,
		Fundamentals:       fundamentals,
		PriceChangePercent: priceChange,
		EarningsDays:       earningsDays,
		MassiveDrop:        validate.DetectMassiveDrop(candles, validate.MassiveDropThreshold),
	})

	out := report{
		Symbol:     cfg.Symbol,
		Indicators: indicators,
		Risk:       profile,
		Context:    marketCtx,
		Decision:   decision,
	}

	if profile.RiskReward < entry.DefaultTargetRR {
		opt := entry.NewOptimizer().OptimizeEntry(
			indicators.Price.Current,
			indicators.Price.EMA20,
			indicators.Price.EMA50,
			indicators.Pivots.Support,
			indicators.Pivots.Resistance,
			indicators.ATR.Value,
			profile.RiskReward,
		)
		out.Entry = &opt
	}

	sizing := risk.CalculatePositionSizing(profile, cfg.AccountSize, cfg.RiskPercent)
	out.Sizing = &sizing

	persistAndNotify(cfg, &out)

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

// persistAndNotify records and broadcasts the decision when the optional
// backends are configured. Failures are logged, not fatal.
func persistAndNotify(cfg *config.Config, out *report) {
	if cfg.PersistenceEnabled() {
		db, err := database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Error().Err(err).Msg("database unavailable, skipping persistence")
		} else {
			defer db.Close()
			if err := db.SaveSignal(out.Symbol, out.Decision, out.Risk); err != nil {
				log.Error().Err(err).Msg("saving signal")
			}
			if out.Entry != nil && out.Entry.Success {
				if err := db.AddToWatchlist(out.Symbol, out.Entry.IdealEntry); err != nil {
					log.Error().Err(err).Msg("updating watchlist")
				}
			}
			if triggered, err := db.CheckAndTriggerAlerts(out.Symbol, out.Indicators.Price.Current); err != nil {
				log.Error().Err(err).Msg("checking price alerts")
			} else if len(triggered) > 0 {
				log.Info().Int("count", len(triggered)).Msg("price alerts triggered")
			}
		}
	}

	if cfg.NotificationsEnabled() {
		tn, err := notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Error().Err(err).Msg("telegram unavailable, skipping notification")
			return
		}
		if err := tn.SendDecision(out.Symbol, out.Decision, out.Risk); err != nil {
			log.Error().Err(err).Msg("sending decision")
		}
	}
}

func runScanner(ctx context.Context, cfg *config.Config, client *provider.Client, keepRunning bool) {
	opts := scanner.DefaultOptions()
	opts.MinChangePercent = cfg.ScanMinChange
	opts.MinVolume = cfg.ScanMinVolume
	opts.MinVolumeRatio = cfg.ScanMinVolumeRate

	s := scanner.New(client, cfg.ScanSymbols, opts)

	deliver := func(movers []models.AfterHoursMover) {
		fmt.Println(notifier.FormatMovers(movers))
		if cfg.NotificationsEnabled() {
			tn, err := notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
			if err != nil {
				log.Error().Err(err).Msg("telegram unavailable")
				return
			}
			if err := tn.SendMovers(movers); err != nil {
				log.Error().Err(err).Msg("sending movers")
			}
		}
	}

	if !keepRunning {
		movers, err := s.Scan(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("after-hours sweep failed")
		}
		deliver(movers)
		return
	}

	if err := s.Schedule(ctx, cfg.ScanSchedule, deliver); err != nil {
		log.Fatal().Err(err).Msg("scheduling after-hours scanner")
	}
	s.Start()
	defer s.Stop()

	<-ctx.Done()
}

// dailyChangePercent is the close-over-close change of the last bar.
func dailyChangePercent(candles []models.Candle) float64 {
	if len(candles) < 2 {
		return 0
	}
	prev := candles[len(candles)-2].Close
	if prev <= 0 {
		return 0
	}
	return (candles[len(candles)-1].Close - prev) / prev * 100
}
