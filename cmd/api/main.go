package main

import (
	"fmt"
	"net/http"

	"github.com/smbgAlokk/BharatForce-sub002/internal/config"
	appHTTP "github.com/smbgAlokk/BharatForce-sub002/internal/handler/http"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/cron"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/database"
	"github.com/smbgAlokk/BharatForce-sub002/internal/pkg/jwt"
	"github.com/smbgAlokk/BharatForce-sub002/internal/repository/postgresql"
	attendanceService "github.com/smbgAlokk/BharatForce-sub002/internal/service/attendance"
	mappingService "github.com/smbgAlokk/BharatForce-sub002/internal/service/mapping"
	periodService "github.com/smbgAlokk/BharatForce-sub002/internal/service/period"
	policyService "github.com/smbgAlokk/BharatForce-sub002/internal/service/policy"
	punchService "github.com/smbgAlokk/BharatForce-sub002/internal/service/punch"
	regularisationService "github.com/smbgAlokk/BharatForce-sub002/internal/service/regularisation"
	shiftService "github.com/smbgAlokk/BharatForce-sub002/internal/service/shift"
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
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	patternRepo := postgresql.NewWeeklyOffPatternRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	mappingRepo := postgresql.NewMappingRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	geoFenceRepo := postgresql.NewGeoFenceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	regularisationRepo := postgresql.NewRegularisationRepository(db)
	closureRepo := postgresql.NewClosureRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	shiftSvc := shiftService.NewShiftService(shiftRepo, patternRepo)
	policySvc := policyService.NewPolicyService(policyRepo)
	geoFenceSvc := punchService.NewGeoFenceService(geoFenceRepo)
	mappingSvc := mappingService.NewMappingService(mappingRepo, employeeRepo, policyRepo, shiftRepo, patternRepo)
	punchSvc := punchService.NewPunchService(punchRepo, geoFenceRepo, closureRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, punchRepo, mappingSvc, closureRepo)
	regularisationSvc := regularisationService.NewRegularisationService(
		db,
		regularisationRepo,
		attendanceRepo,
		employeeRepo,
		mappingSvc,
		closureRepo,
		shiftRepo,
	)
	periodSvc := periodService.NewPeriodService(db, closureRepo, attendanceRepo, attendanceSvc)

	registryHandler := appHTTP.NewRegistryHandler(shiftSvc, policySvc, geoFenceSvc)
	mappingHandler := appHTTP.NewMappingHandler(mappingSvc)
	punchHandler := appHTTP.NewPunchHandler(punchSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	regularisationHandler := appHTTP.NewRegularisationHandler(regularisationSvc)
	periodHandler := appHTTP.NewPeriodHandler(periodSvc)

	router := appHTTP.NewRouter(
		JWTService,
		registryHandler,
		mappingHandler,
		punchHandler,
		attendanceHandler,
		regularisationHandler,
		periodHandler,
		cfg.App.Env,
	)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, employeeRepo)
	attendanceJobs.RegisterJobs(scheduler, cfg.Cron.AttendanceInterval)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
