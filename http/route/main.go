package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eventsnap/eventsnap-service/http/controller"
	middlewares "github.com/eventsnap/eventsnap-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	apiRoutes := r.Group("/api/v1")
	{
		apiRoutes.Use(middles.AuthMiddleware)

		eventRoutes := apiRoutes.Group("/events")
		{
			eventRoutes.POST("", ctrl.CreateEvent)
			eventRoutes.GET("/:eventId", ctrl.GetEvent)

			eventRoutes.POST("/:eventId/photos", ctrl.UploadPhoto)
			eventRoutes.GET("/:eventId/photos", ctrl.ListPhotos)
			eventRoutes.GET("/:eventId/users/:userId/count", ctrl.CountUserPhotos)
		}
	}
	return r
}
