package routes

import (
	"harborview/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints for the booking pipeline.
func RegisterRoutes(r *gin.Engine, wizard *handlers.WizardHandler, availability *handlers.AvailabilityHandler) {
	api := r.Group("/api")

	api.GET("/availability/resolve", availability.Resolve)

	w := api.Group("/wizard")
	{
		w.POST("", wizard.StartWizard)
		w.GET("/:draftID", wizard.GetWizard)
		w.PATCH("/:draftID", wizard.UpdateBookingData)
		w.POST("/:draftID/next", wizard.Next)
		w.POST("/:draftID/back", wizard.Back)
		w.POST("/:draftID/jump", wizard.JumpTo)
		w.POST("/:draftID/submit", wizard.Submit)
	}
}
