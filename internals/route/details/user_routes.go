package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studentrecords_backend/internals/constants"
	userController "studentrecords_backend/internals/features/users/user/controller"
	authMiddleware "studentrecords_backend/internals/middlewares/auth"
)

// UserAdminRoutes mounts account management under the staff-gated group.
// Deleting accounts is narrowed further to Admin and Manager.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	users := admin.Group("/users")
	users.Get("/", ctl.ListUsers)
	users.Post("/", ctl.CreateUser)
	users.Get("/:id", ctl.GetUser)
	users.Put("/:id", ctl.UpdateUser)
	users.Delete("/:id",
		authMiddleware.OnlyRoles(constants.ErrOnlyAdminsCanAccess, constants.RoleAdmin, constants.RoleManager),
		ctl.DeleteUser)
}
