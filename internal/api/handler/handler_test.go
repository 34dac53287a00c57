package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	rerr "github.com/msto63/relativity/foundation/core/error"
	rlog "github.com/msto63/relativity/foundation/core/log"
	"github.com/msto63/relativity/internal/api/metrics"
	"github.com/msto63/relativity/internal/api/middleware"
	"github.com/msto63/relativity/internal/relativity"
	"github.com/msto63/relativity/pkg/core/config"
)

// HandlerSuite exercises the JSON endpoints through a chi router
type HandlerSuite struct {
	suite.Suite
	router  chi.Router
	handler *Handler
	metrics *metrics.Metrics
	logs    *bytes.Buffer
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	engine, err := relativity.New(50)
	s.Require().NoError(err)

	s.logs = &bytes.Buffer{}
	logger := rlog.NewWithConfig(rlog.Config{Level: rlog.LevelDebug, Format: rlog.FormatJSON, Output: s.logs})
	s.metrics = metrics.New()

	s.handler = New(engine, Config{
		Display:   config.Default().Display,
		Series:    config.SeriesConfig{Workers: 2, MaxPoints: 100},
		MaxDigits: 200,
	}, logger, s.metrics)

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.handler.Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.handler.Close()
}

func (s *HandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// ok posts body and decodes a successful response
func (s *HandlerSuite) ok(path, body string) map[string]any {
	rec := s.post(path, body)
	s.Require().Equalf(http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	var out map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// fails posts body and checks the status and error code
func (s *HandlerSuite) fails(path, body string, status int, code rerr.Code) ErrorResponse {
	rec := s.post(path, body)
	s.Require().Equalf(status, rec.Code, "body: %s", rec.Body.String())
	var out ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	s.Equal(code.String(), out.Code)
	return out
}

func displayField(m map[string]any, key string) string {
	q, _ := m[key].(map[string]any)
	s, _ := q["display"].(string)
	return s
}

const exact = `"display": {"show_rounding_indicator": false}`

func (s *HandlerSuite) TestLorentz() {
	out := s.ok("/lorentz", `{"velocity": "179875474.8", "length": "100", `+exact+`}`)
	s.Equal("1.25", displayField(out, "lorentz"))
	s.Equal("80", displayField(out, "contracted_length"))
	s.Contains(out, "rapidity")
	s.NotContains(out, "observed_frequency")
}

func (s *HandlerSuite) TestLorentz_Errors() {
	s.Run("light speed", func() {
		s.fails("/lorentz", `{"velocity": "299792458"}`, http.StatusUnprocessableEntity, rerr.CodeVelocityExceedsC)
	})
	s.Run("malformed number", func() {
		s.fails("/lorentz", `{"velocity": "abc"}`, http.StatusBadRequest, rerr.CodeInvalidInputType)
	})
	s.Run("unknown field", func() {
		s.fails("/lorentz", `{"speed": "1"}`, http.StatusBadRequest, rerr.CodeInvalidInputType)
	})
	s.Run("missing velocity", func() {
		s.fails("/lorentz", `{}`, http.StatusBadRequest, rerr.CodeInvalidInputType)
	})
}

func (s *HandlerSuite) TestAddVelocities() {
	out := s.ok("/add-velocities", `{"v1": 149896229, "v2": "149896229", `+exact+`}`)
	s.Equal("0.8", displayField(out, "beta"))
	s.Equal("c", out["beta"].(map[string]any)["unit"])
}

func (s *HandlerSuite) TestVelocityFrames() {
	proper := s.ok("/velocity", `{"time": "31557600"}`)
	s.Equal("proper", proper["frame"])
	s.True(strings.HasPrefix(displayField(proper, "beta"), "0.77"), displayField(proper, "beta"))

	coord := s.ok("/velocity", `{"time": "31557600", "frame": "coordinate"}`)
	s.Equal("coordinate", coord["frame"])
	s.NotEqual(displayField(proper, "velocity"), displayField(coord, "velocity"))

	s.fails("/velocity", `{"time": "1", "frame": "sideways"}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
}

func (s *HandlerSuite) TestVelocity_CenturyAtDefaultPrecision() {
	// a century at 1 g saturates tanh at 50 digits
	s.fails("/velocity", `{"time": "3155760000"}`, http.StatusUnprocessableEntity, rerr.CodePrecisionFailure)

	out := s.ok("/velocity", `{"time": "3155760000", "precision": 120}`)
	s.True(strings.HasPrefix(displayField(out, "beta"), "0.999"), displayField(out, "beta"))
}

func (s *HandlerSuite) TestDistance() {
	out := s.ok("/distance", `{"time": "31557600"}`)
	s.Contains(out, "coordinate_time")
	s.True(strings.HasPrefix(displayField(out, "light_years"), "0.5"), displayField(out, "light_years"))

	coord := s.ok("/distance", `{"time": "1", "frame": "coordinate"}`)
	s.Contains(coord, "newtonian_distance")
}

func (s *HandlerSuite) TestTimeForDistance() {
	out := s.ok("/time-for-distance", `{"distance": "0"}`)
	s.Equal("0", displayField(out, "proper_time"))
}

func (s *HandlerSuite) TestRapidity() {
	out := s.ok("/rapidity", `{"rapidity": "0"}`)
	s.Equal("0", displayField(out, "velocity"))

	s.fails("/rapidity", `{"rapidity": "1", "velocity": "1"}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	s.fails("/rapidity", `{}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	s.fails("/rapidity", `{"rapidity": "1000"}`, http.StatusUnprocessableEntity, rerr.CodePrecisionFailure)
}

func (s *HandlerSuite) TestFourMomentum() {
	out := s.ok("/four-momentum", `{"mass": "1", "velocity": "0"}`)
	s.Equal("89,875,517,873,681,764", displayField(out, "energy"))

	s.fails("/four-momentum", `{"energy": "1", "momentum": "1"}`, http.StatusUnprocessableEntity, rerr.CodeDomainError)
	s.fails("/four-momentum", `{"mass": "1", "energy": "1"}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
}

func (s *HandlerSuite) TestInterval() {
	light := s.ok("/interval", `{"dt": "1", "dx": "299792458"}`)
	s.Equal("lightlike", light["kind"])

	timelike := s.ok("/interval", `{"dt": "2", "dx": "0", "boost_velocity": "179875474.8", `+exact+`}`)
	s.Equal("timelike", timelike["kind"])
	s.Equal("2", displayField(timelike, "proper_time"))
	boosted := timelike["boosted"].(map[string]any)
	s.Equal("2.5", boosted["t"].(map[string]any)["display"])

	spacelike := s.ok("/interval", `{"dt": "0", "dx": "3", "dy": "4"}`)
	s.Equal("spacelike", spacelike["kind"])
	s.Equal("5", displayField(spacelike, "proper_distance"))
}

func (s *HandlerSuite) TestTrips() {
	s.Run("twin paradox", func() {
		out := s.ok("/twin-paradox", `{"distance": "4", "unit": "ly", "velocity": "239833966.4", `+exact+`}`)
		s.Equal("10", displayField(out, "earth_years"))
		s.Equal("6", displayField(out, "traveler_years"))
		s.Equal("4", displayField(out, "age_difference"))
	})
	s.Run("flip and burn", func() {
		out := s.ok("/flip-and-burn", `{"distance": "4.37", "unit": "ly"}`)
		s.Contains(out, "peak_lorentz")
		s.Equal("yr", out["proper_years"].(map[string]any)["unit"])
	})
	s.Run("fall", func() {
		out := s.ok("/fall", `{"distance": "1", "unit": "au"}`)
		s.Contains(out, "beta")
	})
	s.Run("unknown unit", func() {
		s.fails("/flip-and-burn", `{"distance": "1", "unit": "parsec"}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	})
}

func (s *HandlerSuite) TestFreeFall() {
	out := s.ok("/free-fall", `{"altitude": "100", "display": {"places": 6, "show_rounding_indicator": false}}`)
	s.Equal("4.516066", displayField(out, "fall_time"))
	s.Equal("44.286568", displayField(out, "impact_velocity"))
	s.Contains(out, "proper_time")
	s.Equal("m/s^2", out["gravity"].(map[string]any)["unit"])

	s.fails("/free-fall", `{"altitude": "1e6", "mass": "2e30", "radius": 1000}`,
		http.StatusUnprocessableEntity, rerr.CodeVelocityExceedsC)
	s.fails("/free-fall", `{"altitude": "-1"}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	s.fails("/free-fall", `{}`, http.StatusBadRequest, rerr.CodeInvalidInputType)
}

func (s *HandlerSuite) TestWarpDrive() {
	out := s.ok("/warp-drive", `{"distance_ly": 10, "boost_velocity_c": "0.5", "outbound_years": 0, "return_years": 0, "boost_years": 0}`)
	s.Equal("5", displayField(out, "simultaneity_shift"))
	s.Equal("-5", displayField(out, "time_displacement"))
	s.Equal(true, out["reaches_past"])

	s.fails("/warp-drive", `{"distance_ly": 10, "boost_velocity_c": 1, "outbound_years": 0, "return_years": 0, "boost_years": 0}`,
		http.StatusUnprocessableEntity, rerr.CodeVelocityExceedsC)
}

func (s *HandlerSuite) TestRocket() {
	s.Run("pion accel time", func() {
		out := s.ok("/rocket/accel-time", `{"fuel_mass": 1000, "dry_mass": 500, "efficiency": "0.85"}`)
		s.Equal("pion", out["drive"])
		s.Equal("0.57 (r)", displayField(out, "accel_years"))
	})
	s.Run("photon beats pion", func() {
		out := s.ok("/rocket/accel-time", `{"drive": "photon", "fuel_mass": 1000, "dry_mass": 500, "efficiency": "0.85"}`)
		s.Equal("photon", out["drive"])
		s.NotEqual("0.57 (r)", displayField(out, "accel_years"))
	})
	s.Run("fuel fractions", func() {
		out := s.ok("/rocket/fuel-fraction", `{"thrust_time": "63115200", "efficiencies": ["0.2", "0.5", "1"]}`)
		s.Len(out["fuel_fractions"], 3)
	})
	s.Run("precision failure", func() {
		s.fails("/rocket/fuel-fraction", `{"thrust_time": "31557600000"}`, http.StatusUnprocessableEntity, rerr.CodePrecisionFailure)
	})
	s.Run("exhaust fraction on photon drive", func() {
		s.fails("/rocket/fuel-fraction", `{"drive": "photon", "thrust_time": "1", "exhaust_fraction": "0.5"}`,
			http.StatusBadRequest, rerr.CodeValueOutOfRange)
	})
	s.Run("unknown drive", func() {
		s.fails("/rocket/accel-time", `{"drive": "warp", "fuel_mass": 1, "dry_mass": 1}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	})
	s.Run("zero dry mass", func() {
		s.fails("/rocket/accel-time", `{"fuel_mass": 1, "dry_mass": 0}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	})
}

func (s *HandlerSuite) TestFormat() {
	out := s.ok("/format", `{"value": "123.456"}`)
	s.Equal("123.46 (r)", out["formatted"])
	s.Equal("123.45", out["fixed"])

	out = s.ok("/format", `{"value": "0.000012345", "display": {"ignore_char": "0", "places": 3}}`)
	s.Equal("0.0000123 (r)", out["formatted"])

	s.fails("/format", `{"value": "1", "display": {"ignore_char": "x"}}`, http.StatusBadRequest, rerr.CodeInvalidIgnoreChar)
}

func (s *HandlerSuite) TestFormat_PlacesAboveMaxDigits() {
	s.fails("/format", `{"value": "0.95", "display": {"ignore_char": "9", "places": 9223372036854775807}}`,
		http.StatusBadRequest, rerr.CodeValueOutOfRange)
	s.fails("/lorentz", `{"velocity": "1", "display": {"places": 201}}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)

	out := s.ok("/format", `{"value": "0.95", "display": {"places": 200, "ignore_char": "9"}}`)
	s.Equal("0.95", out["formatted"])
}

func (s *HandlerSuite) TestFormat_PrecisionOverride() {
	out := s.ok("/format", `{"value": "3.14159265358979", "precision": 5}`)
	s.Equal("3.1416", out["value"])

	s.fails("/format", `{"value": "1", "precision": 5000}`, http.StatusBadRequest, rerr.CodeInvalidPrecision)
}

func (s *HandlerSuite) TestPrecisionOverride_ReusesEngine() {
	for i := 0; i < 3; i++ {
		s.ok("/lorentz", `{"velocity": "1", "precision": 20}`)
	}
	s.ok("/lorentz", `{"velocity": "1", "precision": 30}`)
	// the default precision never enters the cache
	s.ok("/lorentz", `{"velocity": "1", "precision": 50}`)

	s.Equal(2, s.handler.engines.Size())
	hits, misses, _ := s.handler.engines.Stats()
	s.Equal(int64(2), hits)
	s.Equal(int64(2), misses)
}

func (s *HandlerSuite) TestMass() {
	out := s.ok("/mass", `{"value": "5.9722e24"}`)
	s.Equal("1 Earth masses (5.972e+24 kg)", out["formatted"])
	s.Equal("5972200000000000000000000", out["value"])
}

func (s *HandlerSuite) TestSeries() {
	out := s.ok("/series", `{"duration": "1", "duration_unit": "yr", "points": 5}`)
	s.Equal(5.0, out["count"])
	points := out["points"].([]any)
	for i, p := range points {
		s.Equal(float64(i), p.(map[string]any)["index"])
	}

	s.fails("/series", `{"duration": "1", "points": 101}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	s.fails("/series", `{"duration": "1", "points": 1}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
	s.fails("/series", `{"duration": "1", "duration_unit": "fortnight", "points": 3}`, http.StatusBadRequest, rerr.CodeValueOutOfRange)
}

func (s *HandlerSuite) TestErrorCarriesRequestID() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/lorentz", strings.NewReader(`{"velocity": "3e8"}`))
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("req-123", rec.Header().Get(middleware.RequestIDHeader))
	var out ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	s.Equal("req-123", out.RequestID)
	s.Contains(s.logs.String(), "req-123")
}

func (s *HandlerSuite) TestInfo() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var out map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	s.Equal(50.0, out["precision"])
	s.Equal("299792458", out["constants"].(map[string]any)["c"])
}

func TestStatusFor(t *testing.T) {
	tests := map[rerr.Code]int{
		rerr.CodeInvalidInputType:  http.StatusBadRequest,
		rerr.CodeInvalidIgnoreChar: http.StatusBadRequest,
		rerr.CodeValueOutOfRange:   http.StatusBadRequest,
		rerr.CodeInvalidPrecision:  http.StatusBadRequest,
		rerr.CodeVelocityExceedsC:  http.StatusUnprocessableEntity,
		rerr.CodePrecisionFailure:  http.StatusUnprocessableEntity,
		rerr.CodeDomainError:       http.StatusUnprocessableEntity,
		rerr.CodeInternal:          http.StatusInternalServerError,
		rerr.CodeUnknown:           http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := StatusFor(code); got != want {
			t.Errorf("StatusFor(%s) = %d, want %d", code, got, want)
		}
	}
}
