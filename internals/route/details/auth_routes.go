package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "studentrecords_backend/internals/features/users/auth/controller"
	authMiddleware "studentrecords_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	grp := app.Group("/api/auth")
	grp.Post("/register", ctl.Register)
	grp.Post("/login", ctl.Login)

	authed := grp.Use(authMiddleware.AuthMiddleware(db))
	authed.Post("/logout", ctl.Logout)
	authed.Get("/me", ctl.Me)
}
