package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "studentrecords_backend/internals/features/school/attendance/controller"
	resultController "studentrecords_backend/internals/features/school/result/controller"
	studentController "studentrecords_backend/internals/features/school/student/controller"
	subjectController "studentrecords_backend/internals/features/school/subject/controller"
)

// SchoolAdminRoutes mounts all staff-only management operations.
func SchoolAdminRoutes(admin fiber.Router, db *gorm.DB) {
	students := studentController.NewStudentController(db)
	subjects := subjectController.NewSubjectController(db)
	results := resultController.NewResultController(db)
	attendance := attendanceController.NewAttendanceController(db)

	st := admin.Group("/students")
	st.Get("/", students.ListStudents)
	st.Get("/options", students.StudentOptions)
	st.Post("/", students.CreateStudent)
	st.Get("/:id", students.GetStudent)
	st.Delete("/:id", students.DeleteStudent)
	st.Post("/:id/class", students.AssignClass)
	st.Put("/:id/class", students.UpdateClass)

	sb := admin.Group("/subjects")
	sb.Get("/", subjects.ListSubjects)
	sb.Post("/", subjects.CreateSubject)
	sb.Delete("/:id", subjects.DeleteSubject)

	rs := admin.Group("/results")
	rs.Post("/", results.CreateResult)
	rs.Put("/:id", results.UpdateResult)
	rs.Delete("/:id", results.DeleteResult)

	at := admin.Group("/attendance")
	at.Post("/", attendance.CreateAttendance)
	at.Post("/class-count", attendance.RecordClassCount)
}

// SchoolUserRoutes mounts the read surface available to any authenticated
// account; the controllers narrow student-role requesters to their own rows.
func SchoolUserRoutes(private fiber.Router, db *gorm.DB) {
	results := resultController.NewResultController(db)
	attendance := attendanceController.NewAttendanceController(db)

	private.Get("/results", results.ListResults)
	private.Get("/attendance", attendance.ListAttendance)
	private.Get("/attendance/summary/:user_id", attendance.AttendanceSummary)
}
