// Package bind decodes and validates JSON request bodies, turning
// every failure into a coded error the envelope can render.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "posbridge/internal/platform/errors"
	"posbridge/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc bundles the process-wide validator with its translator.
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init builds the singleton once, wiring english messages keyed on
// json tag names rather than Go field names.
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// every trigger and report payload carries YYYY-MM-DD days, so the
		// stock datetime message ("does not match...2006-01-02") reads badly
		registerDayMessage(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the singleton, initializing it on first use.
func Get() *ValidatorSvc {
	if vSvc == nil {
		return Init()
	}
	return vSvc
}

// jsonFieldName reports the json tag name of a struct field, falling
// back to the Go name when untagged.
func jsonFieldName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "-" || tag == "" {
		return fld.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// JSONOptions controls body parsing.
type JSONOptions struct {
	MaxBytes        int64 // default 1MB
	DisallowUnknown bool  // default true
	AllowEmptyBody  bool  // default false
}

func defaultJSONOptions() JSONOptions {
	return JSONOptions{
		MaxBytes:        1 << 20,
		DisallowUnknown: true,
	}
}

// capBytes applies the MaxBytes limit when set.
func capBytes(r io.Reader, max int64) io.Reader {
	if max > 0 {
		return io.LimitReader(r, max)
	}
	return r
}

// errEmptyBody marks a request that arrived with no body at all.
var errEmptyBody = errors.New("empty body")

// peekBody reads one byte to distinguish an empty body from a present
// one, returning a reader that replays what was consumed.
func peekBody(body io.Reader) (io.Reader, error) {
	buf := make([]byte, 1)
	n, _ := body.Read(buf)
	if n == 0 {
		return nil, errEmptyBody
	}
	return io.MultiReader(bytes.NewReader(buf[:n]), body), nil
}

// ParseJSON decodes the request body into T and validates it.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero T
	o := defaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Error().Err(err).Msg("failed to close request body")
		}
	}()

	var reader io.Reader = r.Body
	if !o.AllowEmptyBody {
		peeked, err := peekBody(r.Body)
		if err != nil {
			// a bodyless GET or DELETE binds the zero payload
			switch r.Method {
			case http.MethodGet, http.MethodDelete, http.MethodHead, http.MethodOptions:
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		}
		reader = peeked
	}

	dec := json.NewDecoder(capBytes(reader, o.MaxBytes))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	return dst, validate(dst)
}

// validate runs the struct validation and maps the first failure onto
// a field-scoped coded error.
func validate(dst any) error {
	err := Get().Validator.Struct(dst)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ValidationFieldAndMessage extracts the first failing field and its
// translated message.
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

func registerDayMessage(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("datetime", trans,
		func(ut ut.Translator) error {
			return ut.Add("datetime", "{0} must be a YYYY-MM-DD day", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("datetime", fe.Field())
			return msg
		},
	)
}
