package logger

import (
	"context"
	"fmt"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/config"
	"go-hiring/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level     zapcore.Level
	Message   string
	IpAddress string
	HoldingID string
	Caller    string // Function name
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000), // Buffer 1000 logs
		appId:   cfg.AppId,
	}

	// Start the background worker immediately
	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
		// Log pushed to channel
	default:
		// Channel full: drop log rather than block the API
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		logRecord := common_models.Log{
			AppId:     w.appId,
			Level:     mapLevelToInt(entry.Level),
			Message:   entry.Message,
			Caller:    entry.Caller,
			IpAddress: entry.IpAddress,
			HoldingID: entry.HoldingID,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := w.db.Collection("system_logs").InsertOne(ctx, logRecord)
		cancel()
		if err != nil {
			fmt.Println("Failed to persist log:", err)
		}
	}
}

func mapLevelToInt(level zapcore.Level) int {
	switch level {
	case zapcore.DebugLevel:
		return 0
	case zapcore.InfoLevel:
		return 1
	case zapcore.WarnLevel:
		return 2
	case zapcore.ErrorLevel:
		return 3
	default:
		return 4
	}
}
