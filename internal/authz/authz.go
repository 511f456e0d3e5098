package authz

// Authored - ресурс, у которого есть автор (пост, комментарий).
// ok == false означает, что автор ресурса очищен (например, аккаунт удален).
type Authored interface {
	OwnerID() (uint, bool)
}

// CanMutate разрешает изменение ресурса только его автору.
// Анонимный viewer (0) никогда не проходит проверку.
func CanMutate(viewerID uint, resource Authored) bool {
	ownerID, ok := resource.OwnerID()
	if !ok || viewerID == 0 {
		return false
	}
	return ownerID == viewerID
}
