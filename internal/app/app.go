package app

import (
	"bookshop-bot/internal/bot"
	"bookshop-bot/internal/catalog"
	"bookshop-bot/internal/config"
	"bookshop-bot/internal/database"
	"bookshop-bot/internal/logger"
	"bookshop-bot/internal/payment"
	"bookshop-bot/internal/session"
	"bookshop-bot/internal/telegram"

	"go.uber.org/zap"
)

// Run wires the application together and blocks on the update loop.
func Run(configPath string, verbose bool) error {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logger.Level = "debug"
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		zap.L().Error("failed to create logger", zap.Error(err))
		return err
	}
	defer log.Sync()

	db, err := database.NewConnection(cfg.Database, log)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	userRepo := database.NewUserRepository(db, log)
	orderRepo := database.NewOrderRepository(db, log)
	productRepo := database.NewProductRepository(db, log)

	if err := productRepo.Seed(catalog.Products()); err != nil {
		log.Error("failed to seed catalog", zap.Error(err))
		return err
	}

	var sessions session.Store
	if cfg.Redis.Addr != "" {
		redisStore, err := session.NewRedisStore(cfg.Redis.Addr)
		if err != nil {
			log.Error("failed to connect to redis", zap.Error(err))
			return err
		}
		sessions = redisStore
		log.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemoryStore()
		log.Info("using in-memory session store")
	}

	tgClient, err := telegram.NewTelegramClient(cfg.Telegram.Token)
	if err != nil {
		log.Error("failed to create telegram client", zap.Error(err))
		return err
	}

	qr := payment.NewQRFetcher(cfg.Payment.KHQRURL, cfg.Payment.FetchTimeout, log)
	texts := bot.TextsFor(cfg.Bot.Language)

	botCfg := bot.Config{
		AdminID:             cfg.Telegram.AdminID,
		Developer:           cfg.Telegram.Developer,
		KHQRURL:             cfg.Payment.KHQRURL,
		ABAPayURL:           cfg.Payment.ABAPayURL,
		OrdersPerPage:       cfg.Bot.OrdersPerPage,
		UsersPerPage:        cfg.Bot.UsersPerPage,
		ConfirmCancelButton: cfg.Bot.ConfirmCancelButton,
		AutoAttachProof:     cfg.Bot.AutoAttachProof,
	}

	console := bot.NewAdminConsole(tgClient, log, userRepo, orderRepo, sessions, botCfg, texts)
	service := bot.NewService(tgClient, log, userRepo, orderRepo, sessions, qr, console, botCfg, texts)

	messages, callbacks, err := tgClient.StartBot()
	if err != nil {
		log.Error("failed to start telegram polling", zap.Error(err))
		return err
	}

	log.Info("bot started", zap.String("language", cfg.Bot.Language))
	service.Start(messages, callbacks)
	return nil
}
