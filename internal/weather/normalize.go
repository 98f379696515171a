package weather

import "time"

const maxForecastDays = 7

// normalizeTempC coerces an upstream temperature to Celsius. Values inside
// (-100, 100) are assumed to be Celsius already; anything else is treated as
// Kelvin. The heuristic is lossy right at the boundary — upstream gives no
// unit tag, and we always request metric, so this only matters for endpoints
// that ignore the units parameter.
func normalizeTempC(v float64) float64 {
	if v > -100 && v < 100 {
		return v
	}
	return v - 273.15
}

func firstCondition(items []conditionPayload) conditionPayload {
	if len(items) == 0 {
		return conditionPayload{}
	}
	return items[0]
}

// normalizeForecast reshapes either upstream forecast payload into at most
// seven daily entries. When the payload carries neither shape the result is
// an empty Daily slice, not an error.
func normalizeForecast(p forecastPayload) Forecast {
	out := Forecast{Daily: []DailyEntry{}}

	if len(p.Daily) > 0 {
		for _, d := range p.Daily {
			if len(out.Daily) == maxForecastDays {
				break
			}
			cond := firstCondition(d.Weather)
			out.Daily = append(out.Daily, DailyEntry{
				Date:        time.Unix(d.Dt, 0).UTC(),
				TempMinC:    normalizeTempC(d.Temp.Min),
				TempMaxC:    normalizeTempC(d.Temp.Max),
				TempDayC:    normalizeTempC(d.Temp.Day),
				Condition:   cond.Main,
				Description: cond.Description,
				Icon:        cond.Icon,
			})
		}
		return out
	}

	// 5-day/3-hour fallback shape: fold the interval entries into one entry
	// per calendar date, keeping encounter order. The first interval of a
	// date supplies the representative day temperature and condition.
	index := make(map[string]int)
	for _, e := range p.List {
		day := time.Unix(e.Dt, 0).Format("2006-01-02")
		temp := normalizeTempC(e.Main.Temp)
		tmin := normalizeTempC(e.Main.TempMin)
		tmax := normalizeTempC(e.Main.TempMax)

		if i, seen := index[day]; seen {
			if tmin < out.Daily[i].TempMinC {
				out.Daily[i].TempMinC = tmin
			}
			if tmax > out.Daily[i].TempMaxC {
				out.Daily[i].TempMaxC = tmax
			}
			continue
		}

		if len(out.Daily) == maxForecastDays {
			break
		}
		cond := firstCondition(e.Weather)
		index[day] = len(out.Daily)
		out.Daily = append(out.Daily, DailyEntry{
			Date:        time.Unix(e.Dt, 0).UTC(),
			TempMinC:    tmin,
			TempMaxC:    tmax,
			TempDayC:    temp,
			Condition:   cond.Main,
			Description: cond.Description,
			Icon:        cond.Icon,
		})
	}

	return out
}
