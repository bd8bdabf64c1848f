package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"notekeep/utils"
)

var startTime = time.Now()

// HealthHandler handles GET /health with process uptime and host CPU/memory
// readings.
func HealthHandler(c *gin.Context) {
	health := gin.H{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(startTime).Seconds()),
	}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		health["cpu_percent"] = percentages[0]
	} else if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		health["memory"] = gin.H{
			"total":        vm.Total,
			"used":         vm.Used,
			"used_percent": vm.UsedPercent,
		}
	} else {
		log.Printf("Error getting memory usage: %v", err)
	}

	utils.Success(c, health)
}
