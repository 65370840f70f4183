package element

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueString renders the kind-specific decoded value of the element.
func (e *Element) ValueString() string {
	switch e.Kind {
	case KindAudibleAlarm:
		return e.alarmValue()
	case KindCommunicationPort:
		return e.commPortValue()
	case KindCurrentSensor:
		return e.currentValue()
	case KindEnclosure:
		return e.enclosureValue()
	case KindVoltageSensor:
		return e.voltageValue()
	case KindCooling:
		return e.coolingValue()
	case KindTemperatureSensor:
		return e.temperatureValue()
	case KindPowerSupply:
		return e.powerSupplyValue()
	case KindArrayDeviceSlot:
		return e.slotValue()
	case KindSASConnector:
		return e.sasConnectorValue()
	case KindSASExpander:
		return e.sasExpanderValue()
	default:
		return strconv.FormatUint(uint64(e.Value()), 10)
	}
}

func joinOrNone(parts []string) string {
	if len(parts) == 0 {
		parts = append(parts, "None")
	}
	return strings.Join(parts, ", ")
}

func (e *Element) alarmValue() string {
	raw := e.ValueRaw
	var out []string
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if (raw>>16)&0x40 != 0 {
		out = append(out, "Fail on")
	}
	if raw&0x80 != 0 {
		out = append(out, "RQST mute")
	}
	if raw&0x40 != 0 {
		out = append(out, "Muted")
	}
	if raw&0x10 != 0 {
		out = append(out, "Remind")
	}
	if raw&0x08 != 0 {
		out = append(out, "INFO")
	}
	if raw&0x04 != 0 {
		out = append(out, "NON-CRIT")
	}
	if raw&0x02 != 0 {
		out = append(out, "CRIT")
	}
	if raw&0x01 != 0 {
		out = append(out, "UNRECOV")
	}
	return joinOrNone(out)
}

func (e *Element) commPortValue() string {
	raw := e.ValueRaw
	var out []string
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if (raw>>16)&0x40 != 0 {
		out = append(out, "Fail on")
	}
	if raw&0x01 != 0 {
		out = append(out, "Disabled")
	}
	return joinOrNone(out)
}

func (e *Element) currentValue() string {
	raw := e.ValueRaw
	out := []string{fmt.Sprintf("%gA", float64(raw&0xffff)/100)}
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if (raw>>16)&0x40 != 0 {
		out = append(out, "Fail on")
	}
	if (raw>>16)&0x8 != 0 {
		out = append(out, "Warn over")
	}
	if (raw>>16)&0x2 != 0 {
		out = append(out, "Crit over")
	}
	return strings.Join(out, ", ")
}

func (e *Element) enclosureValue() string {
	raw := e.ValueRaw
	var out []string
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if (raw>>8)&0x02 != 0 {
		out = append(out, "Fail on")
	}
	if (raw>>8)&0x01 != 0 {
		out = append(out, "Warn on")
	}
	if pctime := (raw >> 10) & 0x3f; pctime != 0 {
		potime := (raw >> 2) & 0x3f
		out = append(out, fmt.Sprintf("Power cycle %d min, power off for %d min", pctime, potime))
	}
	return joinOrNone(out)
}

func (e *Element) voltageValue() string {
	raw := e.ValueRaw
	out := []string{fmt.Sprintf("%gV", float64(raw&0xffff)/100)}
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if (raw>>16)&0x40 != 0 {
		out = append(out, "Fail on")
	}
	if (raw>>16)&0x8 != 0 {
		out = append(out, "Warn over")
	}
	if (raw>>16)&0x4 != 0 {
		out = append(out, "Warn under")
	}
	if (raw>>16)&0x2 != 0 {
		out = append(out, "Crit over")
	}
	if (raw>>16)&0x1 != 0 {
		out = append(out, "Crit under")
	}
	return strings.Join(out, ", ")
}

func (e *Element) coolingValue() string {
	return fmt.Sprintf("%d RPM", ((e.ValueRaw&0x7ff00)>>8)*10)
}

func (e *Element) temperatureValue() string {
	// 8 bits represent -19C to +235C; 0 (would imply -20C) means not reported
	v := (e.ValueRaw & 0xff00) >> 8
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%dC", int(v)-20)
}

func (e *Element) powerSupplyValue() string {
	raw := e.ValueRaw
	var out []string
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if raw&0x40 != 0 {
		out = append(out, "Fail on")
	}
	if (raw>>8)&0x8 != 0 {
		out = append(out, "DC overvoltage")
	}
	if (raw>>8)&0x4 != 0 {
		out = append(out, "DC undervoltage")
	}
	if (raw>>8)&0x2 != 0 {
		out = append(out, "DC overcurrent")
	}
	if raw&0x8 != 0 {
		out = append(out, "Overtemp fail")
	}
	if raw&0x4 != 0 {
		out = append(out, "Overtemp warn")
	}
	if raw&0x2 != 0 {
		out = append(out, "AC fail")
	}
	if raw&0x1 != 0 {
		out = append(out, "DC fail")
	}
	return joinOrNone(out)
}

func (e *Element) slotValue() string {
	var out []string
	if e.Identify() {
		out = append(out, "Identify on")
	}
	if e.Fault() {
		out = append(out, "Fault on")
	}
	return joinOrNone(out)
}

func (e *Element) sasExpanderValue() string {
	raw := e.ValueRaw
	var out []string
	if (raw>>16)&0x80 != 0 {
		out = append(out, "Identify on")
	}
	if (raw>>16)&0x40 != 0 {
		out = append(out, "Fail on")
	}
	return joinOrNone(out)
}

func (e *Element) sasConnectorValue() string {
	out := []string{sasConnectorType((e.ValueRaw >> 16) & 0x7f)}
	if e.ValueRaw&0x40 != 0 {
		out = append(out, "Fail on")
	}
	return strings.Join(out, ", ")
}

// sasConnectorType decodes the connector type field per sg3_utils.
func sasConnectorType(connType uint32) string {
	switch connType {
	case 0x0:
		return "No information"
	case 0x1:
		return "SAS 4x receptacle (SFF-8470) [max 4 phys]"
	case 0x2:
		return "Mini SAS 4x receptacle (SFF-8088) [max 4 phys]"
	case 0x3:
		return "QSFP+ receptacle (SFF-8436) [max 4 phys]"
	case 0x4:
		return "Mini SAS 4x active receptacle (SFF-8088) [max 4 phys]"
	case 0x5:
		return "Mini SAS HD 4x receptacle (SFF-8644) [max 4 phys]"
	case 0x6:
		return "Mini SAS HD 8x receptacle (SFF-8644) [max 8 phys]"
	case 0x7:
		return "Mini SAS HD 16x receptacle (SFF-8644) [max 16 phys]"
	case 0xf:
		return "Vendor specific external connector"
	case 0x10:
		return "SAS 4i plug (SFF-8484) [max 4 phys]"
	case 0x11:
		return "Mini SAS 4i receptacle (SFF-8087) [max 4 phys]"
	case 0x12:
		return "Mini SAS HD 4i receptacle (SFF-8643) [max 4 phys]"
	case 0x13:
		return "Mini SAS HD 8i receptacle (SFF-8643) [max 8 phys]"
	case 0x20:
		return "SAS Drive backplane receptacle (SFF-8482) [max 2 phys]"
	case 0x21:
		return "SATA host plug [max 1 phy]"
	case 0x22:
		return "SAS Drive plug (SFF-8482) [max 2 phys]"
	case 0x23:
		return "SATA device plug [max 1 phy]"
	case 0x24:
		return "Micro SAS receptacle [max 2 phys]"
	case 0x25:
		return "Micro SATA device plug [max 1 phy]"
	case 0x26:
		return "Micro SAS plug (SFF-8486) [max 2 phys]"
	case 0x27:
		return "Micro SAS/SATA plug (SFF-8486) [max 2 phys]"
	case 0x2f:
		return "SAS virtual connector [max 1 phy]"
	case 0x3f:
		return "Vendor specific internal connector"
	}

	switch {
	case connType < 0x10:
		return fmt.Sprintf("unknown external connector type: 0x%x", connType)
	case connType < 0x20:
		return fmt.Sprintf("unknown internal wide connector type: 0x%x", connType)
	case connType < 0x30:
		return fmt.Sprintf("unknown internal connector to end device, type: 0x%x", connType)
	case connType < 0x3f:
		return fmt.Sprintf("reserved for internal connector, type:0x%x", connType)
	case connType < 0x70:
		return fmt.Sprintf("reserved connector type: 0x%x", connType)
	case connType < 0x80:
		return fmt.Sprintf("vendor specific connector type: 0x%x", connType)
	default:
		return fmt.Sprintf("unexpected connector type: 0x%x", connType)
	}
}
