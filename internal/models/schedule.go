package models

import "fmt"

// Day is a calendar day of the training week, Monday first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the fixed length of a microcycle.
const DaysPerWeek = 7

var (
	dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	dayByKey = map[string]Day{
		"monday": Monday, "mon": Monday, "lunes": Monday, "lun": Monday,
		"tuesday": Tuesday, "tue": Tuesday, "martes": Tuesday, "mar": Tuesday,
		"wednesday": Wednesday, "wed": Wednesday, "miércoles": Wednesday, "miercoles": Wednesday, "mié": Wednesday, "mie": Wednesday,
		"thursday": Thursday, "thu": Thursday, "jueves": Thursday, "jue": Thursday,
		"friday": Friday, "fri": Friday, "viernes": Friday, "vie": Friday,
		"saturday": Saturday, "sat": Saturday, "sábado": Saturday, "sabado": Saturday, "sáb": Saturday, "sab": Saturday,
		"sunday": Sunday, "sun": Sunday, "domingo": Sunday, "dom": Sunday,
	}
)

// ParseDay maps an English or Spanish day name (full or abbreviated) to a Day.
func ParseDay(s string) (Day, error) {
	d, ok := dayByKey[normalizeKey(s)]
	if !ok {
		return 0, fmt.Errorf("models: invalid day: %q", s)
	}
	return d, nil
}

// IsValid reports whether d is Monday through Sunday.
func (d Day) IsValid() bool { return d >= Monday && d <= Sunday }

func (d Day) String() string { return enumName(d, dayNames, "Day") }

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("models: invalid day: %d", int(d))
	}
	return []byte(dayNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(text []byte) error {
	v, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ExternalLoad is the physical load a user carries outside the gym on a day
// (manual work, sport, long commutes on foot).
type ExternalLoad int

const (
	LoadNone ExternalLoad = iota
	LoadLow
	LoadMedium
	LoadHigh
)

var (
	loadNames = []string{"none", "low", "medium", "high"}
	loadByKey = map[string]ExternalLoad{
		"none": LoadNone, "ninguna": LoadNone, "ninguno": LoadNone, "nula": LoadNone,
		"low": LoadLow, "light": LoadLow, "baja": LoadLow, "ligera": LoadLow, "leve": LoadLow,
		"medium": LoadMedium, "moderate": LoadMedium, "media": LoadMedium, "moderada": LoadMedium,
		"high": LoadHigh, "heavy": LoadHigh, "alta": LoadHigh, "pesada": LoadHigh, "intensa": LoadHigh,
	}
)

// ParseExternalLoad maps a load label to an ExternalLoad. Unknown labels
// count as no load.
func ParseExternalLoad(s string) ExternalLoad { return loadByKey[normalizeKey(s)] }

// Score returns the per-day systemic stress contribution: none 0 to high 3.
func (l ExternalLoad) Score() int {
	if l < LoadNone || l > LoadHigh {
		return 0
	}
	return int(l)
}

func (l ExternalLoad) String() string { return enumName(l, loadNames, "ExternalLoad") }

// MarshalText implements encoding.TextMarshaler.
func (l ExternalLoad) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *ExternalLoad) UnmarshalText(text []byte) error {
	*l = ParseExternalLoad(string(text))
	return nil
}

// ScheduleEntry is one day of the user's weekly availability.
type ScheduleEntry struct {
	Day          Day          `json:"day" yaml:"day"`
	CanTrain     bool         `json:"can_train" yaml:"can_train"`
	ExternalLoad ExternalLoad `json:"external_load" yaml:"external_load"`
}
