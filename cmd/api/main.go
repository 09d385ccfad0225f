package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"librarydesk/internal/catalog"
	"librarydesk/internal/circulation"
	apphttp "librarydesk/internal/http"
	"librarydesk/internal/httpx"
	"librarydesk/internal/reservation"
	"librarydesk/internal/roster"
	"librarydesk/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	dataFile := getEnv("LIBRARY_DATA_FILE", "library_data.txt")

	cfg := circulation.Config{
		MaxBorrows:   getEnvInt("MAX_BORROWS", circulation.DefaultMaxBorrows),
		MaxReserve:   getEnvInt("MAX_RESERVE", circulation.DefaultMaxReserve),
		LoanDuration: getEnvInt("LOAN_DURATION_DAYS", circulation.DefaultLoanDuration),
		LateFee:      getEnvInt("LATE_FEE", circulation.DefaultLateFee),
	}

	bookCatalog := catalog.New()
	studentRoster := roster.New()
	reservationQueue := reservation.NewQueue(cfg.MaxReserve)
	engine := circulation.NewEngine(bookCatalog, studentRoster, reservationQueue, cfg)

	if _, err := os.Stat(dataFile); err == nil {
		snap, err := store.Load(dataFile)
		if err != nil {
			log.Fatalf("cannot load %s: %v", dataFile, err)
		}
		if err := store.Apply(snap, bookCatalog, studentRoster, reservationQueue); err != nil {
			log.Fatalf("cannot apply %s: %v", dataFile, err)
		}
		log.Printf("loaded %s: %d books, %d students, %d reservations",
			dataFile, len(snap.Books), len(snap.Students), len(snap.Reservations))
	}

	// one coarse lock around every top-level operation: each touches
	// several collections and must appear atomic to other requests
	var mu sync.Mutex
	saveData := func() error {
		return store.Save(dataFile, bookCatalog, studentRoster, reservationQueue)
	}

	bookHandler := apphttp.NewBookHandler(&mu, bookCatalog, engine)
	studentHandler := apphttp.NewStudentHandler(&mu, studentRoster, engine)
	circulationHandler := apphttp.NewCirculationHandler(&mu, engine)
	adminHandler := apphttp.NewAdminHandler(&mu, saveData)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.HandleFunc("/books", bookHandler.Collection)
	router.HandleFunc("/books/", bookHandler.Item)

	router.HandleFunc("/students", studentHandler.Register)
	router.HandleFunc("/students/", studentHandler.Item)

	router.HandleFunc("/loans", circulationHandler.Borrow)
	router.HandleFunc("/returns", circulationHandler.Return)
	router.HandleFunc("/renewals", circulationHandler.Renew)
	router.HandleFunc("/reservations", circulationHandler.Reserve)
	router.HandleFunc("/reports/overdue", circulationHandler.Overdue)

	router.HandleFunc("/admin/save", adminHandler.Save)

	handler := httpx.RequestIDMiddleware(httpx.AccessLogMiddleware(httpx.RecoveryMiddleware(router)))

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", serverAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if err := saveData(); err != nil {
		log.Printf("final save failed: %v", err)
		return
	}
	log.Printf("library data saved to %s", dataFile)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid value for %s: %q", key, v)
	}
	return n
}
