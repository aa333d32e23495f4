package yield

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarcheck/pkg/common"
	"github.com/raterudder/solarcheck/pkg/log"
	"github.com/raterudder/solarcheck/pkg/types"
)

// PVGIS fetches the monthly yield of a fixed-mount system from the PVGIS
// PVcalc API.
type PVGIS struct {
	apiURL   string
	loss     float64
	cacheTTL time.Duration
	client   *http.Client

	mu    sync.Mutex
	cache map[pvgisKey]pvgisEntry
}

type pvgisKey struct {
	lat, lon float64
}

type pvgisEntry struct {
	profile   types.SolarYieldProfile
	fetchedAt time.Time
}

type pvgisOptions struct {
	Loss    float64 `json:"loss"`
	Timeout string  `json:"timeout"`
}

// configuredPVGIS sets up flags for PVGIS and returns the instance.
func configuredPVGIS() *PVGIS {
	p := NewPVGIS("", 14, 0, nil)
	apiURL := lflag.String("pvgis-api-url", "https://re.jrc.ec.europa.eu/api/v5_2", "URL for the PVGIS API")
	cacheTTL := lflag.Duration("pvgis-cache-ttl", 24*time.Hour, "How long to cache the yield of a location, 0 disables the cache")
	opts := pvgisOptions{Loss: 14, Timeout: "15s"}
	lflag.JSON(&opts, "pvgis-options", opts, "JSON object with the system loss percent (loss) and request timeout (timeout)")

	lflag.Do(func() {
		timeout, err := time.ParseDuration(opts.Timeout)
		if err != nil {
			log.Ctx(context.Background()).Error("invalid pvgis timeout", slog.String("timeout", opts.Timeout), slog.Any("error", err))
			timeout = 15 * time.Second
		}
		p.apiURL = *apiURL
		p.cacheTTL = *cacheTTL
		p.loss = opts.Loss
		p.client = common.HTTPClient(timeout)
		if err := p.Validate(); err != nil {
			log.Ctx(context.Background()).Error("invalid pvgis configuration", slog.Any("error", err))
			os.Exit(1)
		}
	})
	return p
}

// NewPVGIS returns a PVGIS client. A nil client uses common.HTTPClient.
func NewPVGIS(apiURL string, loss float64, cacheTTL time.Duration, client *http.Client) *PVGIS {
	if client == nil {
		client = common.HTTPClient(15 * time.Second)
	}
	return &PVGIS{
		apiURL:   apiURL,
		loss:     loss,
		cacheTTL: cacheTTL,
		client:   client,
		cache:    make(map[pvgisKey]pvgisEntry),
	}
}

// Validate ensures the configuration is valid.
func (p *PVGIS) Validate() error {
	if p.apiURL == "" {
		return fmt.Errorf("pvgis-api-url is required")
	}
	if _, err := url.Parse(p.apiURL); err != nil {
		return fmt.Errorf("failed to parse pvgis url (%s): %w", p.apiURL, err)
	}
	if p.loss < 0 || p.loss >= 100 {
		return fmt.Errorf("pvgis loss must be within [0, 100), got %v", p.loss)
	}
	return nil
}

type pvgisResponse struct {
	Outputs struct {
		Monthly struct {
			Fixed []struct {
				Month int     `json:"month"`
				EM    float64 `json:"E_m"`
			} `json:"fixed"`
		} `json:"monthly"`
		Totals struct {
			Fixed struct {
				EY float64 `json:"E_y"`
			} `json:"fixed"`
		} `json:"totals"`
	} `json:"outputs"`
}

// GetYield implements Provider. Results are cached per location rounded to
// three decimals for cacheTTL; a non-positive TTL disables the cache. The
// returned profile always carries the requested coordinates.
func (p *PVGIS) GetYield(ctx context.Context, lat, lon float64) (types.SolarYieldProfile, error) {
	key := pvgisKey{lat: common.Round(lat, 3), lon: common.Round(lon, 3)}

	if p.cacheTTL > 0 {
		p.mu.Lock()
		e, ok := p.cache[key]
		p.mu.Unlock()
		if ok && time.Since(e.fetchedAt) < p.cacheTTL {
			return withCoordinates(e.profile, lat, lon), nil
		}
	}

	profile, err := p.fetch(ctx, key.lat, key.lon)
	if err != nil {
		return types.SolarYieldProfile{}, err
	}

	if p.cacheTTL > 0 {
		p.mu.Lock()
		p.cache[key] = pvgisEntry{profile: profile, fetchedAt: time.Now()}
		p.mu.Unlock()
	}

	return withCoordinates(profile, lat, lon), nil
}

func withCoordinates(profile types.SolarYieldProfile, lat, lon float64) types.SolarYieldProfile {
	profile.Latitude = lat
	profile.Longitude = lon
	return profile
}

func (p *PVGIS) fetch(ctx context.Context, lat, lon float64) (types.SolarYieldProfile, error) {
	u, err := url.Parse(p.apiURL)
	if err != nil {
		return types.SolarYieldProfile{}, fmt.Errorf("invalid api url: %w", err)
	}
	u = u.JoinPath("PVcalc")

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("peakpower", "1")
	params.Set("loss", strconv.FormatFloat(p.loss, 'f', -1, 64))
	params.Set("outputformat", "json")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return types.SolarYieldProfile{}, fmt.Errorf("failed to create request: %w", err)
	}
	log.Ctx(ctx).DebugContext(ctx, "fetching yield from pvgis", slog.String("url", u.String()))

	resp, err := p.client.Do(req)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to fetch yield", slog.Any("error", err))
		return types.SolarYieldProfile{}, fmt.Errorf("failed to fetch yield: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.SolarYieldProfile{}, fmt.Errorf("pvgis api returned status: %d", resp.StatusCode)
	}

	var data pvgisResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to decode pvgis response", slog.Any("error", err))
		return types.SolarYieldProfile{}, fmt.Errorf("failed to decode response: %w", err)
	}

	fixed := data.Outputs.Monthly.Fixed
	if len(fixed) != 12 {
		return types.SolarYieldProfile{}, fmt.Errorf("pvgis returned %d months, expected 12", len(fixed))
	}
	var monthly types.Monthly
	for i, m := range fixed {
		idx := i
		if m.Month >= 1 && m.Month <= 12 {
			idx = m.Month - 1
		}
		monthly[idx] = m.EM
	}
	if err := monthly.ValidateNonNegative("E_m"); err != nil {
		return types.SolarYieldProfile{}, fmt.Errorf("invalid pvgis response: %v", err)
	}
	annual := data.Outputs.Totals.Fixed.EY
	if annual <= 0 {
		annual = monthly.Sum()
	}

	log.Ctx(ctx).DebugContext(
		ctx,
		"fetched yield",
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
		slog.Float64("annualKWHPerKWP", annual),
	)

	return types.SolarYieldProfile{
		Latitude:         lat,
		Longitude:        lon,
		Source:           "pvgis",
		MonthlyKWHPerKWP: monthly,
		AnnualKWHPerKWP:  annual,
	}, nil
}
