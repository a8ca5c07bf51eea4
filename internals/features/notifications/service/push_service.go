package service

import (
	"encoding/json"
	"log"

	webpush "github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
	"bimbelku_backend/internals/constants"
	announcementDTO "bimbelku_backend/internals/features/announcements/dto"
	dto "bimbelku_backend/internals/features/notifications/dto"
	model "bimbelku_backend/internals/features/notifications/model"
)

// PushService mengirim web push ke subscription tersimpan.
// Best effort: kegagalan kirim hanya dicatat, subscription yang sudah
// mati (410) dihapus.
type PushService struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewPushService(db *gorm.DB, cfg *configs.Config) *PushService {
	return &PushService{DB: db, Cfg: cfg}
}

// Enabled false kalau VAPID key belum dikonfigurasi.
func (s *PushService) Enabled() bool {
	return s.Cfg.VAPIDPublicKey != "" && s.Cfg.VAPIDPrivateKey != ""
}

// BroadcastToRoles mengirim {title, body} ke semua subscription milik
// user dengan role target ("all" berarti semua).
func (s *PushService) BroadcastToRoles(targets []string, title, body string) {
	if !s.Enabled() {
		log.Println("[PUSH] VAPID belum diset, broadcast dilewati")
		return
	}

	roles := make([]string, 0, 3)
	for _, r := range []constants.Role{constants.RoleAdmin, constants.RoleMentor, constants.RoleSiswa} {
		if announcementDTO.TargetsRole(targets, r) {
			roles = append(roles, r.String())
		}
	}
	if len(roles) == 0 {
		return
	}

	q := s.DB.
		Table("push_subscriptions AS ps").
		Joins("JOIN users AS u ON u.id = ps.user_id").
		Where("u.is_active = ?", true)

	// "all" mengenai ketiga role, jadi tidak perlu filter tambahan.
	if len(roles) < 3 {
		q = q.Where("u.role IN ?", roles)
	}

	var subs []model.PushSubscriptionModel
	if err := q.Select("ps.*").Scan(&subs).Error; err != nil {
		log.Printf("[PUSH] gagal ambil subscriptions: %v", err)
		return
	}

	payload, err := json.Marshal(dto.PushPayload{Title: title, Body: body})
	if err != nil {
		return
	}

	sent := 0
	for _, sub := range subs {
		if s.sendToSubscription(sub, payload) {
			sent++
		}
	}
	log.Printf("[PUSH] %d/%d notifikasi terkirim", sent, len(subs))
}

func (s *PushService) sendToSubscription(sub model.PushSubscriptionModel, payload []byte) bool {
	var target webpush.Subscription
	if err := json.Unmarshal(sub.Subscription, &target); err != nil {
		log.Printf("[PUSH] subscription %s rusak: %v", sub.ID, err)
		return false
	}

	resp, err := webpush.SendNotification(payload, &target, &webpush.Options{
		Subscriber:      s.Cfg.VAPIDSubscriber,
		VAPIDPublicKey:  s.Cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.Cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		log.Printf("[PUSH] kirim ke %s gagal: %v", sub.Endpoint, err)
		return false
	}
	defer resp.Body.Close()

	// Endpoint sudah tidak berlaku → bersihkan.
	if resp.StatusCode == 404 || resp.StatusCode == 410 {
		_ = s.DB.Delete(&model.PushSubscriptionModel{}, "id = ?", sub.ID).Error
		return false
	}
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
