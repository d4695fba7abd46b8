package member_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/dojolanza/cuotas/go-api-server/internal/member"
	"github.com/dojolanza/cuotas/go-api-server/internal/model"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/crypto"
	sharedError "github.com/dojolanza/cuotas/go-api-server/internal/shared/error"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMemberRoutes wires the member handler onto a fresh test router
func setupMemberRoutes(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	codec := crypto.NewAESCodec(testSecret)
	memberRepo := member.NewMemberRepository(codec)
	memberService := member.NewMemberService(db, memberRepo)
	memberHandler := member.NewMemberHandler(memberService)

	router := testutil.SetupTestRouter()
	router.GET("/api/v1/members", memberHandler.List)
	router.POST("/api/v1/members", memberHandler.Create)
	router.GET("/api/v1/members/:id", memberHandler.Get)
	router.PUT("/api/v1/members/:id", memberHandler.Update)
	router.DELETE("/api/v1/members/:id", memberHandler.Delete)

	return router
}

func createMemberViaAPI(t *testing.T, router *gin.Engine, body member.CreateMemberRequest) member.MemberResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body:   body,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var response member.MemberResponse
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func TestCreateMember_Success(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)

	// When
	response := createMemberViaAPI(t, router, member.CreateMemberRequest{
		FirstName: "Juan",
		LastName:  "Pérez",
		Email:     "juan@example.com",
		Phone:     "555-123-4567",
		JoinDate:  "2024-03-01",
		Belt:      model.BeltAmarillo,
	})

	// Then: Response carries plaintext and the given values
	assert.NotZero(t, response.ID)
	assert.Equal(t, "Juan", response.FirstName)
	assert.Equal(t, "Pérez", response.LastName)
	assert.Equal(t, "2024-03-01", response.JoinDate)
	assert.Equal(t, model.BeltAmarillo, response.Belt)
	assert.True(t, response.IsActive)
}

func TestCreateMember_Defaults(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)

	// When: Only the required fields are sent
	response := createMemberViaAPI(t, router, member.CreateMemberRequest{
		FirstName: "Ana",
		LastName:  "Ramírez",
	})

	// Then: Belt defaults to blanco and the member is active
	assert.Equal(t, model.BeltBlanco, response.Belt)
	assert.True(t, response.IsActive)
	assert.NotEmpty(t, response.JoinDate)
}

func TestCreateMember_ValidationError(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)

	testCases := []struct {
		name string
		body map[string]string
	}{
		{
			name: "Missing first name",
			body: map[string]string{"lastName": "Pérez"},
		},
		{
			name: "Invalid belt",
			body: map[string]string{"firstName": "Juan", "lastName": "Pérez", "belt": "morado"},
		},
		{
			name: "Invalid email",
			body: map[string]string{"firstName": "Juan", "lastName": "Pérez", "email": "no-es-correo"},
		},
		{
			name: "Invalid join date",
			body: map[string]string{"firstName": "Juan", "lastName": "Pérez", "joinDate": "01/03/2024"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members",
				Body:   tc.body,
			})

			// Then
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestGetMember_NotFound(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members/999",
	})

	// Then
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-001", errorResponse.Code)
}

func TestGetMember_IncludesPayments(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)
	created := createMemberViaAPI(t, router, member.CreateMemberRequest{
		FirstName: "María",
		LastName:  "López",
	})

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members/" + itoa(created.ID),
	})

	// Then
	assert.Equal(t, http.StatusOK, recorder.Code)

	var detail member.MemberDetailResponse
	testutil.ParseResponse(t, recorder, &detail)
	assert.Equal(t, "María", detail.FirstName)
	assert.NotNil(t, detail.Payments)
	assert.Empty(t, detail.Payments)
}

func TestListMembers_SearchByName(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)
	createMemberViaAPI(t, router, member.CreateMemberRequest{FirstName: "Juan", LastName: "Pérez"})
	createMemberViaAPI(t, router, member.CreateMemberRequest{FirstName: "Ana", LastName: "Ramírez"})

	// When: Search matches against the decrypted full name
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members?search=ram",
	})

	// Then
	assert.Equal(t, http.StatusOK, recorder.Code)

	var responses []member.MemberResponse
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 1)
	assert.Equal(t, "Ana", responses[0].FirstName)
}

func TestListMembers_FilterByBelt(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)
	createMemberViaAPI(t, router, member.CreateMemberRequest{FirstName: "Juan", LastName: "Pérez", Belt: model.BeltNegro})
	createMemberViaAPI(t, router, member.CreateMemberRequest{FirstName: "Ana", LastName: "Ramírez"})

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members?belt=negro",
	})

	// Then
	assert.Equal(t, http.StatusOK, recorder.Code)

	var responses []member.MemberResponse
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 1)
	assert.Equal(t, "Juan", responses[0].FirstName)
}

func TestUpdateMember_PartialUpdate(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)
	created := createMemberViaAPI(t, router, member.CreateMemberRequest{
		FirstName: "Juan",
		LastName:  "Pérez",
		Phone:     "555-123-4567",
	})

	// When: Only the belt is updated
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/members/" + itoa(created.ID),
		Body:   map[string]string{"belt": model.BeltVerde},
	})

	// Then: Belt changed, sensitive fields kept their values
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response member.MemberResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, model.BeltVerde, response.Belt)
	assert.Equal(t, "Juan", response.FirstName)
	assert.Equal(t, "555-123-4567", response.Phone)
}

func TestUpdateMember_NotFound(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/members/999",
		Body:   map[string]string{"belt": model.BeltVerde},
	})

	// Then
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteMember_Success(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)
	created := createMemberViaAPI(t, router, member.CreateMemberRequest{
		FirstName: "Juan",
		LastName:  "Pérez",
	})

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/members/" + itoa(created.ID),
	})

	// Then
	assert.Equal(t, http.StatusOK, recorder.Code)

	getRecorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members/" + itoa(created.ID),
	})
	assert.Equal(t, http.StatusNotFound, getRecorder.Code)
}

func TestDeleteMember_NotFound(t *testing.T) {
	// Given
	router := setupMemberRoutes(t)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    "/api/v1/members/999",
	})

	// Then
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func itoa(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
