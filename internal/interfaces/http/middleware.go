package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/jhoicas/Souq-api/internal/application/dto"
	"github.com/jhoicas/Souq-api/pkg/i18n"
	"github.com/jhoicas/Souq-api/pkg/logger"
)

// Language resuelve el idioma de la petición: ?lang= tiene prioridad sobre Accept-Language.
func Language(fallback language.Tag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := i18n.Match(c.Get(fiber.HeaderAcceptLanguage), fallback)
		if q := c.Query("lang"); q != "" {
			lang = i18n.Parse(q)
		}
		c.Locals(LocalLang, lang)
		c.Set(fiber.HeaderContentLanguage, lang.String())
		return c.Next()
	}
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		event := log.Info()
		if status >= 500 {
			event = log.Error().Err(err)
		} else if status >= 400 {
			event = log.Warn()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("http request")
		return err
	}
}

// ErrorHandler responde errores no manejados con dto.ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: i18n.T(GetLang(c), i18n.KeyInternal),
	})
}
