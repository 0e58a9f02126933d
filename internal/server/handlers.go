package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chrissnell/skyalmanac/internal/log"
	"github.com/chrissnell/skyalmanac/internal/store"
	"github.com/chrissnell/skyalmanac/pkg/almanac"
	"github.com/chrissnell/skyalmanac/pkg/lunar"
	"github.com/chrissnell/skyalmanac/pkg/sky"
	"github.com/gorilla/mux"
)

// Viewport used when a frame request omits width or height.
const (
	defaultWidth  = 1280
	defaultHeight = 800
	maxDimension  = 16384
)

// Sweep sampling limits for /api/sweep.
const (
	defaultFrames = 60
	maxFrames     = 1200
)

// noonMinutes is the target for days without a sunset.
const noonMinutes = 12 * 60

// astronomyView is the parsed form of a day record.
type astronomyView struct {
	Sunrise      string  `json:"sunrise,omitempty"`
	Sunset       string  `json:"sunset,omitempty"`
	Moonrise     string  `json:"moonrise,omitempty"`
	Moonset      string  `json:"moonset,omitempty"`
	HebrewDay    int     `json:"hebrew_day"`
	Illumination float64 `json:"illumination"`
	Waxing       bool    `json:"waxing"`
	HasDaylight  bool    `json:"has_daylight"`
}

func viewOf(d sky.DayAstronomy) astronomyView {
	return astronomyView{
		Sunrise:      d.Sunrise.String(),
		Sunset:       d.Sunset.String(),
		Moonrise:     d.Moonrise.String(),
		Moonset:      d.Moonset.String(),
		HebrewDay:    d.HebrewDay,
		Illumination: d.Illumination,
		Waxing:       d.Waxing,
		HasDaylight:  d.HasDaylight(),
	}
}

// DayResponse is the body of /api/day/{date}.
type DayResponse struct {
	Record        almanac.DayRecord `json:"record"`
	Astronomy     astronomyView     `json:"astronomy"`
	DefaultTarget string            `json:"default_target,omitempty"`
	Stage         string            `json:"stage"`
	Caption       string            `json:"caption"`
}

// FrameResponse is the body of /api/frame/{date}.
type FrameResponse struct {
	Date       string    `json:"date"`
	HebrewDate string    `json:"hebrew_date"`
	Auto       bool      `json:"auto"`
	Frame      sky.Frame `json:"frame"`
}

// SweepResponse is the body of /api/sweep/{date}.
type SweepResponse struct {
	Date      string    `json:"date"`
	Available bool      `json:"available"`
	Sweep     sky.Sweep `json:"sweep"`
	Minutes   []int     `json:"minutes,omitempty"`
	Times     []string  `json:"times,omitempty"`
}

// writeLookupError maps store and parse errors onto HTTP statuses.
func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, almanac.ErrBadDate):
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrYearNotFound), errors.Is(err, store.ErrDayNotFound):
		s.formatter.WriteError(w, r, http.StatusNotFound, err.Error())
	default:
		log.Errorw("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		s.formatter.WriteError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, data any) {
	if err := s.formatter.WriteResponse(w, r, http.StatusOK, data); err != nil {
		s.writeLookupError(w, r, fmt.Errorf("encode response: %w", err))
	}
}

// day loads the record for the {date} path variable and parses it.
func (s *Server) day(r *http.Request) (almanac.DayRecord, sky.DayAstronomy, error) {
	rec, err := s.years.Day(r.Context(), mux.Vars(r)["date"])
	if err != nil {
		return almanac.DayRecord{}, sky.DayAstronomy{}, err
	}
	d, err := rec.Astronomy()
	if err != nil {
		return almanac.DayRecord{}, sky.DayAstronomy{}, fmt.Errorf("stored record: %w", err)
	}
	return rec, d, nil
}

// GetYear serves /data/{year}.json or .msgpack. ?format=msgpack also
// selects MessagePack.
func (s *Server) GetYear(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, "invalid year")
		return
	}
	if vars["ext"] == string(almanac.MsgPack) {
		q := r.URL.Query()
		q.Set("format", string(almanac.MsgPack))
		r.URL.RawQuery = q.Encode()
	}

	y, err := s.years.Year(r.Context(), year)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	if err := s.formatter.WriteYear(w, r, y); err != nil {
		s.writeLookupError(w, r, err)
	}
}

// GetFacts serves the trivia list.
func (s *Server) GetFacts(w http.ResponseWriter, r *http.Request) {
	facts := s.facts
	if facts == nil {
		facts = []string{}
	}
	s.write(w, r, facts)
}

// GetFact returns one fact, different from ?prev= when possible.
func (s *Server) GetFact(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, map[string]string{"fact": s.pickFact(r.URL.Query().Get("prev"))})
}

// GetYears lists the years present in the store.
func (s *Server) GetYears(w http.ResponseWriter, r *http.Request) {
	years, err := s.store.Years(r.Context())
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	if years == nil {
		years = []int{}
	}
	s.write(w, r, map[string][]int{"years": years})
}

// GetDay returns the stored record with its parsed astronomy and captions.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	rec, d, err := s.day(r)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	resp := DayResponse{
		Record:    rec,
		Astronomy: viewOf(d),
		Stage:     lunar.StageSentence(d.HebrewDay),
		Caption:   lunar.BirthdayCaption(d.HebrewDay, d.Illumination),
	}
	if m, ok := sky.DefaultTarget(d); ok {
		resp.DefaultTarget = sky.At(m).String()
	}
	s.write(w, r, resp)
}

func dimension(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxDimension {
		return 0, fmt.Errorf("%s must be an integer in 1..%d", name, maxDimension)
	}
	return n, nil
}

// GetFrame renders the scene for ?time=HH:MM, or for the day's default
// target when time is absent.
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	width, err := dimension(r, "width", defaultWidth)
	if err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	height, err := dimension(r, "height", defaultHeight)
	if err != nil {
		s.formatter.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var minutes int
	auto := false
	if v := r.URL.Query().Get("time"); v != "" {
		tod, err := sky.ParseTimeOfDay(v)
		if err != nil || !tod.Valid {
			s.formatter.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("time %q must be HH:MM", v))
			return
		}
		minutes = tod.Minutes
	}

	rec, d, err := s.day(r)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	if r.URL.Query().Get("time") == "" {
		auto = true
		if m, ok := sky.DefaultTarget(d); ok {
			minutes = m
		} else {
			minutes = noonMinutes
		}
	}

	v := sky.Viewport{Width: float64(width), Height: float64(height)}
	s.write(w, r, FrameResponse{
		Date:       rec.Gregorian,
		HebrewDate: rec.HebrewDate,
		Auto:       auto,
		Frame:      s.engine.Frame(minutes, d, v),
	})
}

// GetSweep samples the cursor sweep for a date at ?frames= evenly spaced
// instants.
func (s *Server) GetSweep(w http.ResponseWriter, r *http.Request) {
	frames := defaultFrames
	if v := r.URL.Query().Get("frames"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2 || n > maxFrames {
			s.formatter.WriteError(w, r, http.StatusBadRequest, fmt.Sprintf("frames must be an integer in 2..%d", maxFrames))
			return
		}
		frames = n
	}

	rec, d, err := s.day(r)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	resp := SweepResponse{Date: rec.Gregorian}
	sw, ok := sky.PlanSweep(d, s.engine.Config().Sweep)
	if ok {
		resp.Available = true
		resp.Sweep = sw
		for i := 0; i < frames; i++ {
			elapsed := time.Duration(float64(sw.Duration) * float64(i) / float64(frames-1))
			m, _ := sw.Sample(elapsed)
			resp.Minutes = append(resp.Minutes, m)
			resp.Times = append(resp.Times, sky.At(m).String())
		}
	}
	s.write(w, r, resp)
}

// GetHTTPLog returns the buffered access log, oldest first.
func (s *Server) GetHTTPLog(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, log.GetHTTPLogBuffer().Entries())
}
