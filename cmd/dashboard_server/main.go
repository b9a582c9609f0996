package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hr_dashboard/internal/core"
	dashboardserver "hr_dashboard/internal/dashboard_server"
)

func main() {
	// Создаем корневой контекст
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем общие зависимости
	deps, err := core.InitDependencies(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	// Создаем HTTP-сервер
	server, err := dashboardserver.NewDashboardServer(ctx, deps.Config.ServerConf, deps.Handler, deps.Renderer)
	if err != nil {
		_ = deps.Close()
		log.Fatalf("Failed to create server: %v", err)
	}

	// создаём канал, который будет реагировать на системные сигналы
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		fmt.Printf("🚀 HR дашборд запускается на %s\n", deps.Config.ServerConf.Addr())
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидание сигнала или падения сервера
	select {
	case <-sigChan:
		fmt.Println("\n🛑 Остановка дашборда...")
	case err := <-serverErr:
		log.Printf("Server failed: %v", err)
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	fmt.Println("Останавливаем HTTP сервер дашборда...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Закрываем зависимости: журнал дописывает очередь, health checker останавливается
	if err := deps.Close(); err != nil {
		log.Printf("Error during resources closing: %v", err)
	}

	fmt.Println("👋 Дашборд остановлен")
}
