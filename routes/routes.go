package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pms-backend/controllers"
	"pms-backend/middleware"
	"pms-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances onto the HTTP surface.
func SetupRouter(
	fc *controllers.FolioController,
	rc *controllers.ReservationController,
	hc *controllers.HousekeepingController,
	pc *controllers.PosController,
	sc *controllers.StaffController,
	rpc *controllers.ReportController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", sc.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth())
	{
		property := protected.Group("/property")
		{
			property.GET("", controllers.GetProperty)
			property.PUT("", middleware.Auth(models.RoleManager), controllers.UpdateProperty)
		}

		guests := protected.Group("/guests")
		{
			guests.GET("", controllers.GetGuests)
			guests.GET("/:id", controllers.GetGuestByID)
			guests.POST("", controllers.CreateGuest)
			guests.PUT("/:id", controllers.UpdateGuest)
			guests.DELETE("/:id", controllers.DeleteGuest)
		}

		rooms := protected.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		roomTypes := protected.Group("/room-types")
		{
			roomTypes.GET("", controllers.GetRoomTypes)
			roomTypes.POST("", controllers.CreateRoomType)
			roomTypes.DELETE("/:id", controllers.DeleteRoomType)
		}

		reservations := protected.Group("/reservations")
		{
			reservations.GET("", rc.GetReservations)
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservationDetails)
			reservations.DELETE("/:id", rc.DeleteReservation)
			reservations.POST("/:id/assign-rooms", rc.AssignRooms)
			reservations.POST("/:id/checkin", rc.CheckIn)
			reservations.POST("/:id/checkout", rc.CheckOut)
			reservations.POST("/:id/cancel", rc.CancelReservation)
			reservations.POST("/:id/extend", rc.ExtendStay)
		}

		folios := protected.Group("/folios")
		{
			folios.GET("", fc.ListFolios)
			folios.POST("", fc.CreateFolio)
			folios.GET("/:id", fc.GetFolio)
			folios.POST("/:id/charges", fc.AddCharge)
			folios.POST("/:id/adjustments", fc.AddAdjustment)
			folios.POST("/:id/payments", fc.RecordPayment)
			folios.POST("/:id/items/:itemId/void", fc.VoidItem)
			folios.POST("/:id/items/:itemId/transfer", fc.TransferCharge)
			folios.POST("/:id/payments/:paymentId/void", fc.VoidPayment)
			folios.POST("/:id/split", fc.SplitFolio)
			folios.POST("/:id/close", fc.CloseFolio)
			folios.POST("/:id/reopen", fc.ReopenFolio)
		}

		housekeeping := protected.Group("/housekeeping")
		{
			housekeeping.GET("/tasks", hc.ListTasks)
			housekeeping.POST("/tasks", hc.CreateTask)
			housekeeping.POST("/tasks/:id/start", hc.StartTask)
			housekeeping.POST("/tasks/:id/complete", hc.CompleteTask)
		}

		outlets := protected.Group("/outlets")
		{
			outlets.GET("", controllers.GetOutlets)
			outlets.POST("", controllers.CreateOutlet)
			outlets.GET("/:outletId/menu-items", controllers.GetMenuItems)
			outlets.POST("/:outletId/menu-items", controllers.CreateMenuItem)
		}
		protected.PUT("/menu-items/:id", controllers.UpdateMenuItem)

		orders := protected.Group("/orders")
		{
			orders.POST("", pc.OpenOrder)
			orders.GET("/:id", pc.GetOrder)
			orders.POST("/:id/lines", pc.AddLines)
			orders.POST("/:id/settle", pc.SettleOrder)
			orders.POST("/:id/post-to-folio", pc.PostToFolio)
		}

		corporate := protected.Group("/corporate-accounts")
		{
			corporate.GET("", controllers.GetCorporateAccounts)
			corporate.GET("/:id", controllers.GetCorporateAccountByID)
			corporate.POST("", controllers.CreateCorporateAccount)
			corporate.PUT("/:id", controllers.UpdateCorporateAccount)
		}

		staff := protected.Group("/staff")
		staff.Use(middleware.Auth(models.RoleManager))
		{
			staff.GET("", sc.GetStaff)
			staff.POST("", sc.CreateStaff)
			staff.POST("/:id/deactivate", sc.DeactivateStaff)
		}

		reports := protected.Group("/reports")
		{
			reports.POST("/night-audit", middleware.Auth(models.RoleManager), rpc.RunNightAudit)
			reports.GET("/night-audit/latest", rpc.LatestReport)
		}
	}

	return r
}
