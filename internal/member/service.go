package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/database"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
	}
}

// List returns members matching the query. Belt and active narrow the SQL
// query; the free-text name search runs here, after decryption, because the
// stored name columns are ciphertext and cannot be matched in SQL.
func (s *MemberService) List(ctx context.Context, query *ListMembersQuery) ([]MemberResponse, error) {
	filter := ListFilter{Belt: query.Belt, Active: query.Active}
	members, err := s.memberRepository.FindAll(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(query.Search))

	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		m := &members[i]
		if search != "" && !strings.Contains(strings.ToLower(m.FullName()), search) {
			continue
		}
		responses = append(responses, toMemberResponse(m))
	}
	return responses, nil
}

func (s *MemberService) Get(ctx context.Context, id uint32) (*MemberDetailResponse, error) {
	member, err := s.memberRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member id=%d: %w", id, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	return toMemberDetailResponse(member), nil
}

func (s *MemberService) Create(ctx context.Context, request *CreateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)

	member := &model.Member{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Email:     request.Email,
		Phone:     request.Phone,
		Notes:     request.Notes,
		Belt:      model.BeltBlanco,
		JoinDate:  time.Now().UTC(),
		IsActive:  true,
	}
	if request.Belt != "" {
		member.Belt = request.Belt
	}
	if request.IsActive != nil {
		member.IsActive = *request.IsActive
	}
	if request.JoinDate != "" {
		joinDate, err := parseDate(request.JoinDate)
		if err != nil {
			return nil, fmt.Errorf("parse join date: %w", err)
		}
		member.JoinDate = joinDate
	}
	if request.DateOfBirth != "" {
		dob, err := parseDate(request.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("parse date of birth: %w", err)
		}
		member.DateOfBirth = &dob
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.memberRepository.Create(ctx, tx, member)
	})
	if err != nil {
		log.Error("No se pudo crear el miembro", "error", err)
		return nil, fmt.Errorf("create member: %w", err)
	}

	log.Info("Miembro creado", "member_id", member.ID, "belt", member.Belt)

	response := toMemberResponse(member)
	return &response, nil
}

// Update applies a partial update. Only sensitive fields present in the
// payload are re-encrypted; the rest keep their stored ciphertext.
func (s *MemberService) Update(ctx context.Context, id uint32, request *UpdateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)

	updates, err := buildUpdates(request)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
			affected, err := s.memberRepository.Update(ctx, tx, id, updates)
			if err != nil {
				return fmt.Errorf("update member: %w", err)
			}
			if affected == 0 {
				return fmt.Errorf("member id=%d: %w", id, ErrMemberNotFound)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	member, err := s.memberRepository.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member id=%d: %w", id, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("reload member: %w", err)
	}

	log.Info("Miembro actualizado", "member_id", id, "fields", len(updates))

	response := toMemberResponse(member)
	return &response, nil
}

func (s *MemberService) Delete(ctx context.Context, id uint32) error {
	log := logger.FromContext(ctx)

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		affected, err := s.memberRepository.Delete(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("member id=%d: %w", id, ErrMemberNotFound)
		}
		log.Info("Miembro eliminado", "member_id", id)
		return nil
	})
}

func buildUpdates(request *UpdateMemberRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if request.FirstName != nil {
		updates["first_name"] = *request.FirstName
	}
	if request.LastName != nil {
		updates["last_name"] = *request.LastName
	}
	if request.Email != nil {
		updates["email"] = *request.Email
	}
	if request.Phone != nil {
		updates["phone"] = *request.Phone
	}
	if request.Notes != nil {
		updates["notes"] = *request.Notes
	}
	if request.Belt != nil {
		updates["belt"] = *request.Belt
	}
	if request.IsActive != nil {
		updates["is_active"] = *request.IsActive
	}
	if request.JoinDate != nil {
		joinDate, err := parseDate(*request.JoinDate)
		if err != nil {
			return nil, fmt.Errorf("parse join date: %w", err)
		}
		updates["join_date"] = joinDate
	}
	if request.DateOfBirth != nil {
		dob, err := parseDate(*request.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("parse date of birth: %w", err)
		}
		updates["date_of_birth"] = dob
	}

	return updates, nil
}
