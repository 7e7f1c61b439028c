package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/metorial/homewatch/internal/models"
)

var toneColors = map[models.Tone]*color.Color{
	models.ToneNeutral: color.New(color.FgWhite),
	models.ToneGood:    color.New(color.FgGreen),
	models.ToneWarn:    color.New(color.FgYellow),
	models.ToneBad:     color.New(color.FgRed, color.Bold),
	models.ToneInfo:    color.New(color.FgCyan),
}

var levelTones = map[string]models.Tone{
	"normal":   models.ToneGood,
	"elevated": models.ToneWarn,
	"critical": models.ToneBad,
	"good":     models.ToneGood,
	"fair":     models.ToneWarn,
	"poor":     models.ToneBad,
}

var connectivityTones = map[string]models.Tone{
	"connected":    models.ToneGood,
	"stale":        models.ToneWarn,
	"disconnected": models.ToneBad,
}

func paint(tone models.Tone, s string) string {
	c, ok := toneColors[tone]
	if !ok {
		return s
	}
	return c.Sprint(s)
}

func FormatJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func FormatHealth(w io.Writer, data map[string]interface{}) {
	conn := getString(data, "connectivity")

	fmt.Fprintf(w, "Status:        %s\n", getString(data, "status"))
	fmt.Fprintf(w, "Connectivity:  %s\n", paint(connectivityTones[conn], conn))
	fmt.Fprintf(w, "Last Update:   %s\n", formatTime(data["last_update"]))
	fmt.Fprintf(w, "Version:       %s\n", formatNumber(data["version"]))
}

func FormatOverview(w io.Writer, data map[string]interface{}) {
	health := getMap(data, "health")
	sys := getMap(health, "health")
	levels := getMap(health, "levels")
	state := getString(health, "state")

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  Status:   %s\n", paint(models.ClassifyHealth(models.HealthStatusTag(state)).Tone(), state))
	fmt.Fprintf(w, "  Uptime:   %s\n", getString(sys, "uptime"))
	fmt.Fprintf(w, "  Devices:  %s/%s online (%s%%)\n",
		formatNumber(sys["online_devices"]), formatNumber(sys["total_devices"]), formatNumber(health["online_percent"]))
	fmt.Fprintf(w, "  CPU:      %s\n", formatLevel(sys["system_load"], getString(levels, "cpu")))
	fmt.Fprintf(w, "  Memory:   %s\n", formatLevel(sys["memory_usage"], getString(levels, "memory")))
	fmt.Fprintf(w, "  Disk:     %s\n", formatLevel(sys["disk_usage"], getString(levels, "disk")))

	alerts := getMap(data, "alerts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Alerts")
	fmt.Fprintf(w, "  %s critical, %s warning, %s info, %s success (%s unread, %s unresolved)\n",
		paint(models.ToneBad, formatNumber(alerts["critical"])),
		paint(models.ToneWarn, formatNumber(alerts["warning"])),
		paint(models.ToneInfo, formatNumber(alerts["info"])),
		paint(models.ToneGood, formatNumber(alerts["success"])),
		formatNumber(alerts["unread"]), formatNumber(alerts["unresolved"]))

	autos := getMap(data, "automations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Automations")
	fmt.Fprintf(w, "  %s active, %s inactive\n", formatNumber(autos["active"]), formatNumber(autos["inactive"]))

	activity := getSlice(data, "recent_activity")
	if len(activity) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recent Activity")
	writeActivityRows(w, activity)
}

func FormatDevicesTable(w io.Writer, data map[string]interface{}) {
	devices := getSlice(data, "devices")
	if len(devices) == 0 {
		fmt.Fprintln(w, "No devices found")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tROOM\tTYPE\tSTATUS\tLAST SEEN\tDETAIL")
	for _, d := range devices {
		device := d.(map[string]interface{})
		status := getString(device, "status")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			getString(device, "id"),
			getString(device, "name"),
			getString(device, "room"),
			getString(device, "type"),
			paint(models.ClassifyDevice(models.DeviceStatusTag(status)).Tone(), status),
			getString(device, "last_seen"),
			deviceDetail(device),
		)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%s of %s devices\n", formatNumber(data["count"]), formatNumber(getMap(data, "summary")["total"]))
}

func deviceDetail(device map[string]interface{}) string {
	var parts []string
	if v, ok := device["temperature"]; ok {
		parts = append(parts, formatFloat(v)+"°")
	}
	if v, ok := device["brightness"]; ok {
		parts = append(parts, "brightness "+formatNumber(v)+"%")
	}
	if v, ok := device["is_locked"].(bool); ok {
		if v {
			parts = append(parts, "locked")
		} else {
			parts = append(parts, "unlocked")
		}
	}
	if v, ok := device["battery"]; ok {
		parts = append(parts, "battery "+formatNumber(v)+"%")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func FormatAutomations(w io.Writer, data map[string]interface{}) {
	rules := getSlice(data, "automation_rules")
	if len(rules) == 0 {
		fmt.Fprintln(w, "No automation rules")
	} else {
		tw := newTable(w)
		fmt.Fprintln(tw, "ID\tNAME\tTRIGGER\tACTIVE\tRUNS\tSUCCESS\tLAST RUN\tNEXT RUN")
		for _, r := range rules {
			rule := r.(map[string]interface{})
			trigger := getString(rule, "trigger_type")
			next := getString(rule, "next_execution")
			if next == "" {
				next = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				getString(rule, "id"),
				getString(rule, "name"),
				paint(models.ClassifyTrigger(models.TriggerTag(trigger)).Tone(), trigger),
				formatActive(rule["is_active"]),
				formatNumber(rule["execution_count"]),
				paint(levelTones[getString(rule, "success_class")], formatFloat(rule["success_rate"])+"%"),
				getString(rule, "last_executed"),
				next,
			)
		}
		tw.Flush()
	}

	scenes := getSlice(data, "scenes")
	if len(scenes) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSCENE\tDEVICES\tLAST ACTIVATED")
	for _, s := range scenes {
		scene := s.(map[string]interface{})
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n",
			getString(scene, "id"),
			getString(scene, "icon"),
			getString(scene, "name"),
			formatNumber(scene["device_count"]),
			getString(scene, "last_activated"),
		)
	}
	tw.Flush()
}

func FormatPerformance(w io.Writer, data map[string]interface{}) {
	health := getMap(data, "health")
	sys := getMap(health, "health")
	levels := getMap(health, "levels")
	conn := getString(data, "connectivity")

	fmt.Fprintf(w, "Telemetry:  %s\n", paint(connectivityTones[conn], conn))
	fmt.Fprintf(w, "CPU:        %s\n", formatLevel(sys["system_load"], getString(levels, "cpu")))
	fmt.Fprintf(w, "Memory:     %s\n", formatLevel(sys["memory_usage"], getString(levels, "memory")))
	fmt.Fprintf(w, "Disk:       %s\n", formatLevel(sys["disk_usage"], getString(levels, "disk")))

	network := getMap(data, "network")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Network")
	fmt.Fprintf(w, "  In/Out:       %s / %s MB/s\n", formatFloat(network["inbound"]), formatFloat(network["outbound"]))
	fmt.Fprintf(w, "  Latency:      %s ms\n", formatFloat(network["latency"]))
	fmt.Fprintf(w, "  Connections:  %s\n", formatNumber(network["connections"]))

	db := getMap(data, "database")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Database")
	fmt.Fprintf(w, "  Connections:  %s\n", formatNumber(db["connections"]))
	fmt.Fprintf(w, "  Queries:      %s\n", formatNumber(db["queries"]))
	fmt.Fprintf(w, "  Avg Response: %s ms\n", formatFloat(db["avg_response_time"]))
	fmt.Fprintf(w, "  Cache Hits:   %s%%\n", formatFloat(db["cache_hit_rate"]))

	if services := getSlice(data, "services"); len(services) > 0 {
		fmt.Fprintln(w)
		tw := newTable(w)
		fmt.Fprintln(tw, "SERVICE\tSTATUS\tUPTIME")
		for _, s := range services {
			svc := s.(map[string]interface{})
			fmt.Fprintf(tw, "%s\t%s\t%s\n", getString(svc, "name"), getString(svc, "status"), getString(svc, "uptime"))
		}
		tw.Flush()
	}

	if history := getSlice(data, "cpu_history"); len(history) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "CPU history (%d samples): %s\n", len(history), formatSamples(history))
	}
	if history := getSlice(data, "memory_history"); len(history) > 0 {
		fmt.Fprintf(w, "Memory history (%d samples): %s\n", len(history), formatSamples(history))
	}
}

func formatSamples(samples []interface{}) string {
	values := make([]string, 0, len(samples))
	for _, s := range samples {
		sample, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		values = append(values, formatFloat(sample["value"]))
	}
	return strings.Join(values, " ")
}

func FormatAlertsTable(w io.Writer, data map[string]interface{}) {
	alerts := getSlice(data, "alerts")
	if len(alerts) == 0 {
		fmt.Fprintln(w, "No alerts found")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tSOURCE\tWHEN\tSTATE")
	for _, a := range alerts {
		alert := a.(map[string]interface{})
		kind := getString(alert, "type")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			getString(alert, "id"),
			paint(models.ClassifyAlert(models.AlertType(kind)).Tone(), kind),
			getString(alert, "title"),
			getString(alert, "source"),
			getString(alert, "timestamp"),
			alertState(alert),
		)
	}
	tw.Flush()

	summary := getMap(data, "summary")
	fmt.Fprintf(w, "\n%s shown, %s unread, %s unresolved\n",
		formatNumber(data["count"]), formatNumber(summary["unread"]), formatNumber(summary["unresolved"]))
}

func alertState(alert map[string]interface{}) string {
	if resolved, _ := alert["is_resolved"].(bool); resolved {
		return paint(models.ToneGood, "resolved")
	}
	if read, _ := alert["is_read"].(bool); read {
		return "read"
	}
	return paint(models.ToneWarn, "unread")
}

func FormatActivityTable(w io.Writer, data map[string]interface{}) {
	items := getSlice(data, "activity")
	if len(items) == 0 {
		fmt.Fprintln(w, "No activity found")
		return
	}
	writeActivityRows(w, items)
}

func writeActivityRows(w io.Writer, items []interface{}) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tOUTCOME\tUSER\tWHEN")
	for _, it := range items {
		item := it.(map[string]interface{})
		kind := getString(item, "type")
		outcome := getString(item, "status")
		user := getString(item, "user")
		if user == "" {
			user = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			getString(item, "id"),
			paint(models.ClassifyActivity(models.ActivityCategoryTag(kind)).Tone(), kind),
			getString(item, "title"),
			paint(models.ClassifyOutcome(models.ActivityOutcomeTag(outcome)).Tone(), outcome),
			user,
			getString(item, "timestamp"),
		)
	}
	tw.Flush()
}

// FormatMutation reports whether a command touched anything. Unknown ids are
// not errors on the controller, so the CLI says so explicitly.
func FormatMutation(w io.Writer, noun, verb string, data map[string]interface{}) {
	id := getString(data, "id")
	if matched, _ := data["matched"].(bool); !matched {
		fmt.Fprintf(w, "%s %s not found, nothing changed\n", noun, id)
		return
	}
	fmt.Fprintf(w, "%s %s %s (version %s)\n", noun, id, verb, formatNumber(data["version"]))
}

func formatLevel(v interface{}, level string) string {
	return paint(levelTones[level], formatFloat(v)+"%") + " " + level
}

func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return map[string]interface{}{}
}

func getSlice(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key].([]interface{}); ok {
		return v
	}
	return nil
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func formatNumber(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.Comma(int64(f))
	}
	return "0"
}

func formatFloat(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.FtoaWithDigits(f, 1)
	}
	return "0"
}

func formatTime(v interface{}) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return "never"
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return humanize.Time(t)
}

func formatActive(v interface{}) string {
	if b, ok := v.(bool); ok && b {
		return paint(models.ToneGood, "yes")
	}
	return paint(models.ToneNeutral, "no")
}
