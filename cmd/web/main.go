// @title           PropertyDeals API
// @version         1.0
// @description     Real-estate marketplace backend: listings, offers, role management.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "propertydeals_backend/internal/app"

func main() {
	app.Run()
}
