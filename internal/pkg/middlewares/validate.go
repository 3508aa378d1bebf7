package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"exusiai.dev/forecast-next/internal/pkg/rekuest"
)

func ValidateModelKeyAsParam(c *fiber.Ctx) error {
	if err := rekuest.ValidModelKey(c.Params("key")); err != nil {
		return err
	}
	return c.Next()
}

func ValidateCensusColumnAsParam(c *fiber.Ctx) error {
	if err := rekuest.ValidCensusColumn(c.Params("column")); err != nil {
		return err
	}
	return c.Next()
}
