package main

import (
	"context"
	"time"

	"floorsync/config"
	httpapi "floorsync/internal/api/http"
	"floorsync/internal/domain"
	"floorsync/internal/service"
	"floorsync/internal/storage"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const changeTopic = "floor.events"

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(changeTopic)
	defer writer.Close()

	branchID := config.BranchID()

	gateway := storage.NewPostgresGateway(db)
	publisher := storage.NewFeedPublisher(writer)
	feed := &storage.KafkaFeed{
		NewReader: func(groupID string) *kafka.Reader {
			return config.NewKafkaReader(changeTopic, groupID)
		},
		NewGroupID: func() string { return "floorsync-" + uuid.NewString() },
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notifier := service.NewMemoryNotifier()

	orderSource := service.NewEventSource(feed, []string{domain.KindOrders}, service.DefaultPollInterval)
	view := service.NewOrderView(gateway, orderSource, service.DefaultLookbackDays)
	kitchen := service.NewKitchen(view, gateway, publisher, notifier)

	cashSource := service.NewEventSource(feed,
		[]string{domain.KindSessions, domain.KindPayments}, service.DefaultPollInterval)
	sessions := service.NewSessions(gateway, cashSource, publisher)
	totals := service.NewShiftTotals(gateway)
	sessions.OnChange(func(active *domain.CashSession) {
		sessionID := ""
		if active != nil {
			sessionID = active.ID
		}
		totals.SetSession(context.Background(), sessionID)
	})

	checkout := service.NewCheckout(view, sessions, gateway, gateway, publisher)
	directory := service.NewDirectory(gateway,
		storage.NewDirectoryRedisCache(rdb, 24*time.Hour))

	go orderSource.Run(ctx)
	go view.Run(ctx)
	go cashSource.Run(ctx)
	go sessions.Run(ctx)

	view.SetScope(ctx, branchID)
	sessions.SetScope(ctx, branchID)

	handler := &httpapi.Handler{
		Orders:    view,
		Kitchen:   kitchen,
		Sessions:  sessions,
		Stats:     totals,
		Checkout:  checkout,
		Directory: directory,
		Notifier:  notifier,
		ReceiptQR: service.DefaultReceiptQR{BaseURL: config.ReceiptBaseURL()},
	}

	httpapi.StartServer(config.ListenAddr(), httpapi.NewRouter(handler))
}
