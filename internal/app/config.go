package app

import (
	"strings"
	"time"

	"github.com/tpdash/tp-dashboard-backend/internal/logger"
	"github.com/tpdash/tp-dashboard-backend/internal/utils"
)

type Config struct {
	HTTPAddr string
	// AttendanceRef* anchor the dates of attendance grids and risk
	// history columns, which only carry day and month labels.
	AttendanceRefYear  int
	AttendanceRefMonth time.Month
	AllowOrigins       []string
}

func LoadConfig(log *logger.Logger) Config {
	httpAddr := utils.GetEnv("HTTP_ADDR", ":8080", log)
	refYear := utils.GetEnvAsInt("ATTENDANCE_REF_YEAR", 2025, log)
	refMonth := utils.GetEnvAsInt("ATTENDANCE_REF_MONTH", 1, log)
	if refMonth < 1 || refMonth > 12 {
		log.Warn("ATTENDANCE_REF_MONTH out of range, using January", "value", refMonth)
		refMonth = 1
	}

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		HTTPAddr:           httpAddr,
		AttendanceRefYear:  refYear,
		AttendanceRefMonth: time.Month(refMonth),
		AllowOrigins:       origins,
	}
}
