package calendar

// Day records slot occupancy for one calendar date. All 96 slots are
// materialised at construction; the empty string marks an unoccupied slot.
// A slot holds at most one event id at any time.
type Day struct {
	Date Date

	slots map[TimeOfDay]string
}

// NewDay constructs a fully unoccupied day for the given date.
func NewDay(date Date) *Day {
	slots := make(map[TimeOfDay]string, SlotsPerDay)
	for _, slot := range Slots() {
		slots[slot] = ""
	}
	return &Day{Date: date, slots: slots}
}

// AddEvent books every slot in [start, end) for the event. The whole range
// is verified before any slot is written, so a failed booking leaves the
// day unchanged. Slots already held by the same id are tolerated.
func (d *Day) AddEvent(eventID string, start, end TimeOfDay) error {
	if !d.fits(eventID, start, end) {
		return ErrSlotNotAvailable
	}
	for _, slot := range Slots() {
		if inRange(slot, start, end) {
			d.slots[slot] = eventID
		}
	}
	return nil
}

// DeleteEvent clears every slot currently booked by the event. It returns
// ErrEventNotFound when the id holds no slot in this day.
func (d *Day) DeleteEvent(eventID string) error {
	cleared := false
	for slot, held := range d.slots {
		if held == eventID {
			d.slots[slot] = ""
			cleared = true
		}
	}
	if !cleared {
		return ErrEventNotFound
	}
	return nil
}

// UpdateEvent rebooks the event's slots to the new range.
func (d *Day) UpdateEvent(eventID string, start, end TimeOfDay) error {
	if err := d.DeleteEvent(eventID); err != nil {
		return err
	}
	return d.AddEvent(eventID, start, end)
}

// AvailableSlots returns the unoccupied slots in ascending time order.
func (d *Day) AvailableSlots() []TimeOfDay {
	free := make([]TimeOfDay, 0, SlotsPerDay)
	for _, slot := range Slots() {
		if d.slots[slot] == "" {
			free = append(free, slot)
		}
	}
	return free
}

// Holds reports whether any slot is booked by the event.
func (d *Day) Holds(eventID string) bool {
	if eventID == "" {
		return false
	}
	for _, held := range d.slots {
		if held == eventID {
			return true
		}
	}
	return false
}

// fits reports whether the range could be booked for the event without
// displacing another one.
func (d *Day) fits(eventID string, start, end TimeOfDay) bool {
	for _, slot := range Slots() {
		if !inRange(slot, start, end) {
			continue
		}
		if held := d.slots[slot]; held != "" && held != eventID {
			return false
		}
	}
	return true
}

func inRange(slot, start, end TimeOfDay) bool {
	m := slot.Minutes()
	return start.Minutes() <= m && m < end.Minutes()
}
