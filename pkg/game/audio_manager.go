package game

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

// DefaultSampleRate 没有音频上下文时合成音效使用的采样率
const DefaultSampleRate = 44100

// maxVoices 同时播放的音效数上限，超出时停止最旧的
const maxVoices = 8

// toneSpec 合成音效参数
type toneSpec struct {
	freq       float64 // 起始频率（Hz）
	endFreq    float64 // 结束频率（Hz），线性滑音
	durationMs int
}

// eventTones 事件 -> 音效
// 未列出的事件不发声
var eventTones = map[EventType]toneSpec{
	EventEnemyHit:         {freq: 880, endFreq: 440, durationMs: 60},
	EventShipHit:          {freq: 220, endFreq: 110, durationMs: 180},
	EventShipDestroyed:    {freq: 160, endFreq: 40, durationMs: 400},
	EventPickupCollected:  {freq: 1320, endFreq: 1760, durationMs: 30},
	EventShieldActivated:  {freq: 520, endFreq: 1040, durationMs: 250},
	EventPowerUpCollected: {freq: 660, endFreq: 1320, durationMs: 150},
	EventBossSpawned:      {freq: 110, endFreq: 90, durationMs: 600},
	EventBossHit:          {freq: 300, endFreq: 280, durationMs: 40},
	EventBossDefeated:     {freq: 200, endFreq: 30, durationMs: 900},
	EventStageAdvanced:    {freq: 440, endFreq: 880, durationMs: 500},
	EventVictory:          {freq: 523, endFreq: 1046, durationMs: 900},
	EventGameOver:         {freq: 330, endFreq: 82, durationMs: 900},
}

// AudioManager 音频协作方
//
// 订阅事件总线，把事件映射为合成的短音效，交给 ebiten 音频播放。
// 播放是异步的，模拟核心从不等待。
type AudioManager struct {
	context         *audio.Context // 可为 nil（无声模式，例如无头运行）
	settingsManager *SettingsManager
	tones           map[EventType][]byte // 预先合成的 PCM 数据
	voices          []*audio.Player
	nextVoice       int
	log             zerolog.Logger
}

// NewAudioManager 创建音频管理器并预先合成所有音效
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: 设置管理器（读取音量和开关，可为 nil）
//   - log: 日志器
func NewAudioManager(ctx *audio.Context, sm *SettingsManager, log zerolog.Logger) *AudioManager {
	sampleRate := DefaultSampleRate
	if ctx != nil {
		sampleRate = ctx.SampleRate()
	}

	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		tones:           make(map[EventType][]byte, len(eventTones)),
		voices:          make([]*audio.Player, maxVoices),
		log:             log.With().Str("system", "Audio").Logger(),
	}
	for t, spec := range eventTones {
		am.tones[t] = synthTone(sampleRate, spec)
	}
	return am
}

// HandleEvent 事件总线订阅回调
//
// 返回：
//   - bool: 是否播放了音效
func (am *AudioManager) HandleEvent(e Event) bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	data, ok := am.tones[e.Type]
	if !ok {
		return false
	}

	// 复用槽位前停止旧的播放器
	if old := am.voices[am.nextVoice]; old != nil && old.IsPlaying() {
		old.Pause()
		am.log.Debug().Stringer("event", e.Type).Msg("voice stolen")
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.soundVolume())
	player.Play()
	am.voices[am.nextVoice] = player
	am.nextVoice = (am.nextVoice + 1) % maxVoices
	return true
}

// soundVolume 获取音效音量设置
func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// synthTone 生成带滑音和线性衰减包络的正弦波
// 输出 16 位小端立体声 PCM（ebiten 音频的原生格式）
func synthTone(sampleRate int, spec toneSpec) []byte {
	samples := sampleRate * spec.durationMs / 1000
	buf := make([]byte, samples*4)

	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := spec.freq + (spec.endFreq-spec.freq)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)
		amp := (1 - t) * 0.3
		v := int16(math.Sin(phase) * amp * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
