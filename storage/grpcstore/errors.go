package grpcstore

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"xdao.co/paint/storage"
)

var known = []error{
	storage.ErrNotFound,
	storage.ErrMalformed,
	storage.ErrInvalidCID,
	storage.ErrCIDMismatch,
	storage.ErrImmutable,
}

// mapRPC turns a status error from the server back into a storage sentinel.
func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, k := range known {
		if st.Message() == k.Error() {
			return k
		}
	}
	if st.Code() == codes.NotFound {
		return storage.ErrNotFound
	}
	return err
}
