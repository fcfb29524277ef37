package router

import (
	"net/http"

	"medisync/app/controllers"
	"medisync/app/middleware"
)

func NewRouter(
	authCtrl *controllers.AuthController,
	patientCtrl *controllers.PatientController,
	datasetCtrl *controllers.DatasetController,
	healthCtrl *controllers.HealthController,
	adminCtrl *controllers.AdminController,
	mw *middleware.Auth,
) http.Handler {
	mux := http.NewServeMux()

	// public
	mux.HandleFunc("/health", healthCtrl.Health)
	mux.HandleFunc("/register", authCtrl.Register)
	mux.HandleFunc("/login", authCtrl.Login)
	mux.HandleFunc("/data", datasetCtrl.Preview)

	// authenticated
	mux.Handle("/logout", mw.RequireAuth(http.HandlerFunc(authCtrl.Logout)))
	mux.Handle("/patients", mw.RequireAuth(http.HandlerFunc(patientCtrl.Collection)))
	mux.Handle("/patients/", mw.RequireAuth(http.HandlerFunc(patientCtrl.Item)))

	// admin-only endpoints
	mux.Handle("/admin/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.ListUsers)))
	mux.Handle("/admin/mirror/users", mw.RequireAdmin(http.HandlerFunc(adminCtrl.MirrorUsers)))
	mux.Handle("/admin/mirror/patients", mw.RequireAdmin(http.HandlerFunc(adminCtrl.MirrorPatients)))
	mux.Handle("/admin/sync-failures", mw.RequireAdmin(http.HandlerFunc(adminCtrl.SyncFailures)))

	return mux
}
