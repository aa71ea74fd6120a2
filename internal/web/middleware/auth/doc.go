// Package auth provides the route guards of the admin area.
//
// Both guards read the signed session cookie through the session store and
// decide admin status by comparing the session email with the configured
// admin email. They are mounted on route groups:
//
//	admin := app.Group("/admin", auth.AdminGuard(store))
//	api := app.Group("/api/admin", auth.AdminAPIGuard(store))
//
// AdminGuard redirects to the login page, AdminAPIGuard answers with JSON
// errors through the fiber error handler. On success the session data is
// available through CurrentSession. The guards do not look at the access
// cookie; the site gate and the admin area are independent.
package auth
