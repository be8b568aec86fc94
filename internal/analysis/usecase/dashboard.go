package usecase

import (
	"fmt"
	"log"
	"time"

	"github.com/seqlab/triplex-go/internal/monitoring"
)

func (u *AnalysisUsecase) RenderIndexHTML() (string, error) {
	html := `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta http-equiv="refresh" content="10">
    <title>Triplex</title>
    <style>
        body {
            font-family: monospace;
            margin: 20px;
            background-color: #f5f5f5;
        }
        .header {
            background: #333;
            color: #fff;
            padding: 15px;
            margin-bottom: 20px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            background: #fff;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
        }
        th {
            background: #333;
            color: #fff;
            padding: 12px;
            text-align: left;
            font-size: 12px;
        }
        td {
            padding: 10px 12px;
            border-bottom: 1px solid #ddd;
            font-size: 11px;
        }
        tr:hover {
            background-color: #f9f9f9;
        }
        .status-online {
            color: #4CAF50;
            font-weight: bold;
        }
        .status-offline {
            color: #f44336;
            font-weight: bold;
        }
        .status-warning {
            color: #ff9800;
            font-weight: bold;
        }
        .metric {
            font-size: 11px;
            color: #666;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin: 20px 0 10px 0;
            color: #333;
        }
        .refresh-info {
            color: #666;
            font-size: 11px;
            margin-top: 20px;
        }
        .empty-state {
            background: #fff;
            padding: 40px;
            text-align: center;
            color: #999;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>triplexd ` + u.Version + `</div>
    </div>
`

	html += `<div class="section-title">Recent Requests</div>`

	var requests []requestRow
	if u.Requests != nil {
		infos, err := u.Requests.GetRecentRequests(50)
		if err != nil {
			log.Printf("Failed to list requests: %v\n", err)
		}
		for _, info := range infos {
			requests = append(requests, requestRow{
				RequestID:   info.RequestID,
				Email:       info.Email,
				SubmittedAt: info.SubmittedAt,
				State:       info.State,
				FailureKind: info.FailureKind,
			})
		}
	}

	if len(requests) > 0 {
		html += `
		<table>
			<thead>
				<tr>
					<th>Timestamp</th>
					<th>Email</th>
					<th>Status</th>
					<th>Logs</th>
					<th>Request ID</th>
				</tr>
			</thead>
			<tbody>`

		for _, req := range requests {
			statusClass := "status-warning"
			statusText := req.State
			switch req.State {
			case "DONE":
				statusClass = "status-online"
			case "FAILED":
				statusClass = "status-offline"
				if req.FailureKind != "" {
					statusText = "FAILED (" + req.FailureKind + ")"
				}
			}

			timeStr := fmt.Sprintf("%s<br><span style=\"color: #666; font-size: 0.9em;\">(%s)</span>",
				req.SubmittedAt.Format("2006-01-02 15:04:05 MST"),
				formatRelativeTime(req.SubmittedAt))

			html += fmt.Sprintf(`
				<tr>
					<td>%s</td>
					<td>%s</td>
					<td><span class="%s">%s</span></td>
					<td><a href="/logs/%s.log" target="_blank">log</a></td>
					<td style="font-family: monospace; font-size: 0.85em;">%s</td>
				</tr>`,
				timeStr,
				req.Email,
				statusClass,
				statusText,
				req.RequestID,
				req.RequestID,
			)
		}

		html += `
			</tbody>
		</table>`
	} else {
		html += `<div class="empty-state">No requests yet</div>`
	}

	if u.Config.Monitoring.Enabled && u.MonitoringRegistry != nil {
		instances, err := u.MonitoringRegistry.ListInstances()
		if err != nil {
			log.Printf("Failed to list instances: %v\n", err)
		} else {
			html += `<div class="section-title">Instances</div>`

			if len(instances) > 0 {
				html += `
    <table>
        <thead>
            <tr>
                <th>Hostname</th>
                <th>Status</th>
                <th>Uptime</th>
                <th>Pipelines</th>
                <th>Memory</th>
                <th>Disk</th>
            </tr>
        </thead>
        <tbody>`

				for _, instance := range instances {
					statusClass := "status-offline"
					if instance.Status == monitoring.StatusOnline {
						statusClass = "status-online"
					}

					uptimeStr := formatDuration(time.Since(instance.StartTime))

					memStr := monitoring.FormatBytes(instance.MemoryUsage)
					if instance.MemoryTotal > 0 {
						memStr += " / " + monitoring.FormatBytes(instance.MemoryTotal)
					}

					diskStr := monitoring.FormatBytes(instance.DiskUsage)
					if instance.DiskTotal > 0 {
						diskStr += " / " + monitoring.FormatBytes(instance.DiskTotal)
					}

					html += fmt.Sprintf(`
            <tr>
                <td>%s</td>
                <td><span class="%s">%s</span></td>
                <td>%s</td>
                <td>%d / %d</td>
                <td class="metric">%s</td>
                <td class="metric">%s</td>
            </tr>`,
						instance.Hostname,
						statusClass,
						instance.Status,
						uptimeStr,
						instance.ActivePipelines,
						instance.MaxPipelines,
						memStr,
						diskStr,
					)
				}

				html += `
        </tbody>
    </table>
`
			} else {
				html += `<div class="empty-state">No instances found</div>`
			}
		}
	}

	html += `
    <div class="refresh-info">
        Page auto-refreshes every 10 seconds
    </div>
</body>
</html>
`

	return html, nil
}

type requestRow struct {
	RequestID   string
	Email       string
	SubmittedAt time.Time
	State       string
	FailureKind string
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dd %dh", int(d.Hours())/24, int(d.Hours())%24)
}

func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	if d < 0 {
		return "just now"
	}
	seconds := int(d.Seconds())
	if seconds < 60 {
		if seconds == 1 {
			return "1 second ago"
		}
		return fmt.Sprintf("%d seconds ago", seconds)
	}
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", minutes)
	}
	hours := int(d.Hours())
	if hours < 24 {
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
