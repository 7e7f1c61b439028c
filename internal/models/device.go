package models

import "errors"

type DeviceCategory string

const (
	CategoryLight      DeviceCategory = "light"
	CategoryThermostat DeviceCategory = "thermostat"
	CategoryCamera     DeviceCategory = "camera"
	CategoryLock       DeviceCategory = "lock"
	CategorySensor     DeviceCategory = "sensor"
)

type DeviceStatusTag string

const (
	StatusOnline  DeviceStatusTag = "online"
	StatusOffline DeviceStatusTag = "offline"
	StatusError   DeviceStatusTag = "error"
)

type Device struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    DeviceCategory  `json:"type"`
	Room        string          `json:"room"`
	Status      DeviceStatusTag `json:"status"`
	LastSeen    string          `json:"last_seen"`
	Temperature *float64        `json:"temperature,omitempty"`
	Brightness  *int            `json:"brightness,omitempty"`
	Locked      *bool           `json:"is_locked,omitempty"`
	Battery     *int            `json:"battery,omitempty"`
}

// DevicePatch carries the fields of a point update. Nil fields are left as they are.
type DevicePatch struct {
	Status      *DeviceStatusTag `json:"status,omitempty"`
	LastSeen    *string          `json:"last_seen,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
	Brightness  *int             `json:"brightness,omitempty"`
	Locked      *bool            `json:"is_locked,omitempty"`
	Battery     *int             `json:"battery,omitempty"`
}

func (p DevicePatch) Empty() bool {
	return p.Status == nil && p.LastSeen == nil && p.Temperature == nil &&
		p.Brightness == nil && p.Locked == nil && p.Battery == nil
}

var (
	ErrUnknownDeviceStatus = errors.New("unknown device status")
	ErrBrightnessRange     = errors.New("brightness must be between 0 and 100")
	ErrBatteryRange        = errors.New("battery must be between 0 and 100")
)

// Validate rejects status tags outside the closed set and percentages
// outside 0..100.
func (p DevicePatch) Validate() error {
	if p.Status != nil && ClassifyDevice(*p.Status) == DeviceUnrecognized {
		return ErrUnknownDeviceStatus
	}
	if p.Brightness != nil && !percent(*p.Brightness) {
		return ErrBrightnessRange
	}
	if p.Battery != nil && !percent(*p.Battery) {
		return ErrBatteryRange
	}
	return nil
}

func percent(v int) bool {
	return v >= 0 && v <= 100
}

func (p DevicePatch) Apply(d *Device) {
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.LastSeen != nil {
		d.LastSeen = *p.LastSeen
	}
	if p.Temperature != nil {
		v := *p.Temperature
		d.Temperature = &v
	}
	if p.Brightness != nil {
		v := *p.Brightness
		d.Brightness = &v
	}
	if p.Locked != nil {
		v := *p.Locked
		d.Locked = &v
	}
	if p.Battery != nil {
		v := *p.Battery
		d.Battery = &v
	}
}

// Clone copies the optional fields so the result shares no pointers with d.
func (d Device) Clone() Device {
	c := d
	if d.Temperature != nil {
		v := *d.Temperature
		c.Temperature = &v
	}
	if d.Brightness != nil {
		v := *d.Brightness
		c.Brightness = &v
	}
	if d.Locked != nil {
		v := *d.Locked
		c.Locked = &v
	}
	if d.Battery != nil {
		v := *d.Battery
		c.Battery = &v
	}
	return c
}
