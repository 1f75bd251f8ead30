package main

import (
	"fmt"
	"net/http"

	"github.com/Laredoboynvl/timecardpro-sub002/internal/config"
	appHTTP "github.com/Laredoboynvl/timecardpro-sub002/internal/handler/http"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/database"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/pkg/jwt"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/repository/postgresql"
	attendanceService "github.com/Laredoboynvl/timecardpro-sub002/internal/service/attendance"
	"github.com/Laredoboynvl/timecardpro-sub002/internal/service/calendar"
	reportService "github.com/Laredoboynvl/timecardpro-sub002/internal/service/report"
	vacationService "github.com/Laredoboynvl/timecardpro-sub002/internal/service/vacation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	txRunner := postgresql.NewTxRunner(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	cycleRepo := postgresql.NewCycleRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	typeRepo := postgresql.NewTypeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	resolver := calendar.NewResolver(holidayRepo, requestRepo)
	ledgerService := vacationService.NewLedgerService(txRunner, cycleRepo, employeeRepo)
	requestService := vacationService.NewRequestService(txRunner, requestRepo, employeeRepo, ledgerService, resolver)
	marker := attendanceService.NewMarkerService(
		recordRepo,
		typeRepo,
		employeeRepo,
		resolver,
		cfg.Marker.BatchSize,
		cfg.Marker.BatchPause,
	)
	reportSvc := reportService.NewService(employeeRepo, recordRepo, typeRepo, resolver)

	vacationHandler := appHTTP.NewVacationHandler(ledgerService, requestService)
	attendanceHandler := appHTTP.NewAttendanceHandler(marker)
	calendarHandler := appHTTP.NewCalendarHandler(resolver, holidayRepo)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		vacationHandler,
		attendanceHandler,
		calendarHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
