package main

import (
	"exusiai.dev/forecast-next/cmd/app"
)

// @title          Forecast API
// @version        1.0.0
// @description    Demographic vote predictions for a two-candidate primary, projected per congressional district.
// @license.name   MIT License
// @license.url    https://opensource.org/licenses/MIT
// @BasePath       /api
func main() {
	app.Run()
}
