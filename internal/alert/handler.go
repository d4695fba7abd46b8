package alert

import (
	"net/http"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/mail"
	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/handler"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	resolver   *Resolver
	dispatcher *Dispatcher
	scheduler  *Scheduler
	mailer     mail.Mailer
}

func NewAlertHandler(resolver *Resolver, dispatcher *Dispatcher, scheduler *Scheduler, mailer mail.Mailer) *AlertHandler {
	return &AlertHandler{
		resolver:   resolver,
		dispatcher: dispatcher,
		scheduler:  scheduler,
		mailer:     mailer,
	}
}

// SendAlerts triggers one manual dispatch run for the current period.
func (h *AlertHandler) SendAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	period := CurrentPeriod(time.Now())

	members, err := h.resolver.FindOverdue(ctx, period)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	if len(members) == 0 {
		c.JSON(http.StatusOK, SendAlertsResponse{
			Message: "No hay miembros con pagos atrasados",
		})
		return
	}

	outcome := h.dispatcher.SendBulk(ctx, members, period)

	c.JSON(http.StatusOK, SendAlertsResponse{
		Message:      "Alertas enviadas para el período " + period,
		TotalOverdue: len(members),
		Sent:         outcome.Sent,
		Failed:       outcome.Failed,
		NoEmail:      outcome.NoEmail,
	})
}

// Schedule enables or disables the recurring reminder jobs.
func (h *AlertHandler) Schedule(c *gin.Context) {
	var request ScheduleRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	if *request.Enabled {
		if err := h.scheduler.Start(); err != nil {
			handler.RespondError(c, err, sharedError.InternalServerError)
			return
		}
		c.JSON(http.StatusOK, ScheduleResponse{
			Message: "Alertas automáticas activadas",
			Enabled: true,
		})
		return
	}

	h.scheduler.Stop()
	c.JSON(http.StatusOK, ScheduleResponse{
		Message: "Alertas automáticas desactivadas",
		Enabled: false,
	})
}

// Status reports whether the recurring jobs are scheduled.
func (h *AlertHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.scheduler.IsRunning()})
}

// TestEmail verifies SMTP reachability and credentials without sending a
// real message.
func (h *AlertHandler) TestEmail(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.mailer.Verify(ctx); err != nil {
		logger.FromContext(ctx).Error("Prueba de conexión SMTP fallida", "error", err)
		c.JSON(http.StatusOK, TestEmailResponse{
			Success: false,
			Message: "Error en conexión SMTP",
		})
		return
	}

	c.JSON(http.StatusOK, TestEmailResponse{
		Success: true,
		Message: "Conexión SMTP exitosa",
	})
}
