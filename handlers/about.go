package handlers

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"mrfriendly/bot"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleAbout replies with bot and system stats.
func HandleAbout(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	var dbSize int64
	if fi, err := os.Stat(b.GetConfig().DatabasePath); err == nil {
		dbSize = fi.Size() / 1024 / 1024
	}

	cpuUsage := "n/a"
	if len(cpuPercent) > 0 {
		cpuUsage = fmt.Sprintf("%.1f%%", cpuPercent[0])
	}
	osVersion := "n/a"
	kernel := "n/a"
	if hostInfo != nil {
		osVersion = fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion)
		kernel = hostInfo.KernelVersion
	}
	memUsage := "n/a"
	if vm != nil {
		memUsage = fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024)
	}

	embed := &discordgo.MessageEmbed{
		Title: "About",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: osVersion, Inline: true},
			{Name: "🔧 Kernel", Value: kernel, Inline: true},
			{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "🔥 CPU usage", Value: cpuUsage, Inline: true},
			{Name: "🧠 Memory", Value: memUsage, Inline: true},
			{Name: "🗃️ Database size", Value: fmt.Sprintf("%d MB", dbSize), Inline: true},
			{Name: "⏱️ WebSocket latency", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "🌍 Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("System stats as of %s", time.Now().Format("15:04")),
		},
	}

	settings, err := loadSettings(b, i.GuildID)
	timeout := int64(60)
	if err == nil {
		timeout = settings.MsgTimeout
	}
	utils.RespondEmbedEphemeral(s, i, embed, timeout)
}
